// Package pattern compiles route path strings like "users/:id/*rest"
// into segment lists that the route tree matches against URLs.
package pattern

import (
	"fmt"
	"strings"
)

// Kind classifies how one compiled segment matches a path segment.
type Kind int

const (
	// KindLiteral matches a path segment byte-for-byte.
	KindLiteral Kind = iota

	// KindParam matches any single path segment and captures it.
	KindParam

	// KindOptionalParam matches a single path segment if one is present.
	KindOptionalParam

	// KindWildcard matches the entire remaining path.
	KindWildcard
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindParam:
		return "param"
	case KindOptionalParam:
		return "optional"
	case KindWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Segment is one unit of a compiled pattern.
type Segment struct {
	// Kind determines how the segment matches.
	Kind Kind

	// Literal is the exact text to match when Kind is KindLiteral.
	Literal string

	// Param is the capture name for param, optional and wildcard segments.
	// A bare "*" wildcard captures under the name "*".
	Param string
}

// String reconstructs the source form of the segment.
func (s Segment) String() string {
	switch s.Kind {
	case KindParam:
		return ":" + s.Param
	case KindOptionalParam:
		return ":" + s.Param + "?"
	case KindWildcard:
		if s.Param == "*" {
			return "*"
		}
		return "*" + s.Param
	default:
		return s.Literal
	}
}

// Pattern is a compiled path pattern: an ordered sequence of segments.
// Patterns are immutable after Compile.
type Pattern struct {
	// Raw is the pattern text as given to Compile.
	Raw string

	// Segments are the compiled segments in path order.
	Segments []Segment
}

// PatternError describes a malformed route pattern.
type PatternError struct {
	// Pattern is the full pattern text.
	Pattern string

	// Segment is the offending segment.
	Segment string

	// Reason is the human-readable rejection reason.
	Reason string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: segment %q: %s", e.Pattern, e.Segment, e.Reason)
}

// Compile parses a route pattern into its segment sequence.
//
// Grammar, per segment:
//   - ":name"  matches one path segment, captured as name
//   - ":name?" matches one path segment if present
//   - "*"      matches the remaining path, captured as "*"
//   - "*name"  matches the remaining path, captured as name
//   - anything else matches literally
//
// Compile fails when a wildcard is not the final segment, a parameter name
// is empty, or the same capture name appears twice.
func Compile(raw string) (Pattern, error) {
	p := Pattern{Raw: raw}

	segs := split(raw)
	if len(segs) == 0 {
		return p, nil
	}

	seen := make(map[string]bool, len(segs))
	for i, seg := range segs {
		compiled, err := compileSegment(raw, seg)
		if err != nil {
			return Pattern{}, err
		}

		if compiled.Kind == KindWildcard && i != len(segs)-1 {
			return Pattern{}, &PatternError{Pattern: raw, Segment: seg, Reason: "wildcard must be the final segment"}
		}

		if compiled.Param != "" {
			if seen[compiled.Param] {
				return Pattern{}, &PatternError{Pattern: raw, Segment: seg, Reason: fmt.Sprintf("duplicate parameter %q", compiled.Param)}
			}
			seen[compiled.Param] = true
		}

		p.Segments = append(p.Segments, compiled)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error.
// Intended for statically known patterns.
func MustCompile(raw string) Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// compileSegment classifies a single raw segment.
func compileSegment(pattern, seg string) (Segment, error) {
	switch {
	case strings.HasPrefix(seg, "*"):
		name := seg[1:]
		if name == "" {
			name = "*"
		}
		return Segment{Kind: KindWildcard, Param: name}, nil

	case strings.HasPrefix(seg, ":"):
		name := seg[1:]
		kind := KindParam
		if strings.HasSuffix(name, "?") {
			kind = KindOptionalParam
			name = strings.TrimSuffix(name, "?")
		}
		if name == "" {
			return Segment{}, &PatternError{Pattern: pattern, Segment: seg, Reason: "empty parameter name"}
		}
		return Segment{Kind: kind, Param: name}, nil

	default:
		return Segment{Literal: seg}, nil
	}
}

// String reconstructs the canonical pattern text. The empty pattern
// renders as "/".
func (p Pattern) String() string {
	if len(p.Segments) == 0 {
		return "/"
	}
	parts := make([]string, len(p.Segments))
	for i, s := range p.Segments {
		parts[i] = s.String()
	}
	return "/" + strings.Join(parts, "/")
}

// IsEmpty reports whether the pattern has no segments.
func (p Pattern) IsEmpty() bool {
	return len(p.Segments) == 0
}

// HasWildcard reports whether the final segment is a wildcard.
func (p Pattern) HasWildcard() bool {
	n := len(p.Segments)
	return n > 0 && p.Segments[n-1].Kind == KindWildcard
}

// ParamNames returns the capture names in segment order.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, s := range p.Segments {
		if s.Param != "" {
			names = append(names, s.Param)
		}
	}
	return names
}

// split breaks a raw pattern into segments, ignoring leading and
// trailing slashes. "" and "/" both yield no segments.
func split(raw string) []string {
	raw = strings.Trim(raw, "/")
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "/")
}
