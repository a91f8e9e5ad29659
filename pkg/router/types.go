package router

// Decl declares one route in a nested declaration tree. Declarations are
// plain data: BuildTree compiles them into an immutable RouteNode tree.
type Decl struct {
	// Path is the route pattern, relative to the parent declaration.
	// Index declarations leave it empty.
	Path string

	// Index marks the default child: it is selected when the parent's
	// path is fully consumed with no segment left for a sibling.
	Index bool

	// Payload is an opaque identifier for the thing this route renders.
	// The router never interprets it.
	Payload string

	// Children are nested declarations, tried in order during resolution.
	Children []Decl
}

// MatchResult is the outcome of resolving a path against a route tree.
type MatchResult struct {
	// Chain is the matched node sequence from root to leaf. Empty when
	// Matched is false.
	Chain []*RouteNode

	// Params maps capture names to the path segments they consumed.
	// When a name is captured at two levels of the chain, the deeper
	// capture wins. Nil when Matched is false, non-nil (possibly empty)
	// otherwise.
	Params map[string]string

	// Rest is the remainder consumed by a wildcard, joined with "/".
	// Empty when no wildcard participated in the match.
	Rest string

	// Matched reports whether the full path was consumed by some chain.
	// An unmatched path is an expected outcome, not an error.
	Matched bool
}

// Leaf returns the final node of the chain, or nil when unmatched.
func (m MatchResult) Leaf() *RouteNode {
	if len(m.Chain) == 0 {
		return nil
	}
	return m.Chain[len(m.Chain)-1]
}

// Payloads returns the payload identifiers along the chain, root to leaf,
// skipping nodes that carry none.
func (m MatchResult) Payloads() []string {
	var out []string
	for _, n := range m.Chain {
		if n.payload != "" {
			out = append(out, n.payload)
		}
	}
	return out
}
