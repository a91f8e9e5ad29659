package pattern

import (
	"fmt"
	"strings"
)

// Build produces a concrete path from the pattern by substituting
// parameter values.
//
// Required parameters must be present and non-empty. Optional parameters
// are omitted when absent. A wildcard consumes its value verbatim, slashes
// included, and must be present since a wildcard never matches an empty
// remainder. Non-wildcard values must not contain "/".
func (p Pattern) Build(params map[string]string) (string, error) {
	if len(p.Segments) == 0 {
		return "/", nil
	}

	parts := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		switch seg.Kind {
		case KindLiteral:
			parts = append(parts, seg.Literal)

		case KindParam:
			val, ok := params[seg.Param]
			if !ok || val == "" {
				return "", fmt.Errorf("missing value for parameter %q in pattern %q", seg.Param, p.Raw)
			}
			if strings.Contains(val, "/") {
				return "", fmt.Errorf("value for parameter %q contains %q", seg.Param, "/")
			}
			parts = append(parts, val)

		case KindOptionalParam:
			val, ok := params[seg.Param]
			if !ok || val == "" {
				continue
			}
			if strings.Contains(val, "/") {
				return "", fmt.Errorf("value for parameter %q contains %q", seg.Param, "/")
			}
			parts = append(parts, val)

		case KindWildcard:
			val, ok := params[seg.Param]
			if !ok || val == "" {
				return "", fmt.Errorf("missing value for wildcard %q in pattern %q", seg.Param, p.Raw)
			}
			parts = append(parts, strings.Trim(val, "/"))
		}
	}

	if len(parts) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(parts, "/"), nil
}

// BuildPath compiles raw and substitutes params in one step.
func BuildPath(raw string, params map[string]string) (string, error) {
	p, err := Compile(raw)
	if err != nil {
		return "", err
	}
	return p.Build(params)
}
