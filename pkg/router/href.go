package router

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

// Href builds the concrete path for the route identified by payload,
// substituting params into every pattern between the root and the node.
// When a payload is declared more than once the first declaration wins;
// Validate flags that situation.
//
// Required parameters must all be present; optional parameters are
// omitted when absent, exactly as in pattern.Build.
func Href(root *RouteNode, payload string, params map[string]string) (string, error) {
	trail, ok := findPayload(root, payload)
	if !ok {
		return "", fmt.Errorf("no route with payload %q", payload)
	}

	var sb strings.Builder
	for _, p := range trail {
		part, err := p.Build(params)
		if err != nil {
			return "", err
		}
		if part == "/" {
			continue
		}
		sb.WriteString(part)
	}

	if sb.Len() == 0 {
		return "/", nil
	}
	return sb.String(), nil
}

// HrefQuery is Href with an encoded query string appended.
func HrefQuery(root *RouteNode, payload string, params map[string]string, query url.Values) (string, error) {
	path, err := Href(root, payload, params)
	if err != nil {
		return "", err
	}
	if len(query) == 0 {
		return path, nil
	}
	return path + "?" + query.Encode(), nil
}

// findPayload locates the first node carrying payload, in declaration
// order, and returns its pattern trail.
func findPayload(root *RouteNode, payload string) ([]pattern.Pattern, bool) {
	var (
		found []pattern.Pattern
		ok    bool
	)
	root.Walk(func(n *RouteNode, trail []pattern.Pattern) bool {
		if n != root && n.payload == payload {
			found = append([]pattern.Pattern(nil), trail...)
			ok = true
			return false
		}
		return true
	})
	return found, ok
}
