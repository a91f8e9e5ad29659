package router

import (
	"strings"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

// Resolve matches path against the tree rooted at root and returns the
// best chain of nodes from root to leaf.
//
// At every node the remaining path is matched against the node's own
// pattern, then completion is attempted through its children. Children
// are tried in precedence order on their first pattern segment:
//
//  1. literals equal to the next path segment
//  2. required parameters
//  3. optional parameters, consumed before unconsumed
//  4. wildcard, which swallows the whole remainder
//
// Declaration order breaks ties inside a class. Resolution backtracks
// exhaustively: a child whose subtree cannot consume the full path is
// abandoned and the next candidate is tried. When the path is fully
// consumed at a node, its index child (if any) completes the chain;
// otherwise the node itself is the leaf.
//
// A path that no chain consumes yields Matched=false with an empty chain;
// that is an expected outcome, not an error. Resolve never mutates the
// tree, so concurrent and repeated calls are safe and yield identical
// results. Path must be bare, with no query component.
//
// Descent depth is bounded by the static tree height plus the longest
// pattern. Ambiguous trees stacking optional and wildcard siblings can
// force exponential backtracking in the worst case; route tables are
// small and static in practice, which keeps this a non-issue.
func Resolve(root *RouteNode, path string) MatchResult {
	if root == nil {
		return MatchResult{}
	}

	m := &matcher{params: make(map[string]string)}
	chain, ok := m.node(root, splitPath(path))
	if !ok {
		return MatchResult{}
	}
	return MatchResult{
		Chain:   chain,
		Params:  m.params,
		Rest:    m.rest,
		Matched: true,
	}
}

// matcher carries the capture state of one Resolve call.
type matcher struct {
	params map[string]string
	rest   string
}

// capture is one undo-log entry: the previous state of a param name.
type capture struct {
	name string
	old  string
	had  bool
}

// set records a capture and returns the grown undo log.
func (m *matcher) set(log []capture, name, val string) []capture {
	old, had := m.params[name]
	m.params[name] = val
	return append(log, capture{name: name, old: old, had: had})
}

// undo rolls captures back in reverse order.
func (m *matcher) undo(log []capture) {
	for i := len(log) - 1; i >= 0; i-- {
		c := log[i]
		if c.had {
			m.params[c.name] = c.old
		} else {
			delete(m.params, c.name)
		}
	}
}

// node matches n's own pattern against a prefix of segs and completes the
// chain below it. The returned chain starts at n.
func (m *matcher) node(n *RouteNode, segs []string) ([]*RouteNode, bool) {
	return m.pattern(n, n.pat.Segments, segs)
}

// pattern consumes n's remaining pattern segments against the remaining
// path segments. Each call owns its own undo log so a failed alternative
// leaves no capture behind.
func (m *matcher) pattern(n *RouteNode, psegs []pattern.Segment, segs []string) ([]*RouteNode, bool) {
	if len(psegs) == 0 {
		return m.complete(n, segs)
	}

	ps := psegs[0]
	switch ps.Kind {
	case pattern.KindLiteral:
		if len(segs) > 0 && segs[0] == ps.Literal {
			return m.pattern(n, psegs[1:], segs[1:])
		}
		return nil, false

	case pattern.KindParam:
		if len(segs) == 0 {
			return nil, false
		}
		log := m.set(nil, ps.Param, segs[0])
		if chain, ok := m.pattern(n, psegs[1:], segs[1:]); ok {
			return chain, true
		}
		m.undo(log)
		return nil, false

	case pattern.KindOptionalParam:
		// Consumed first.
		if len(segs) > 0 {
			log := m.set(nil, ps.Param, segs[0])
			if chain, ok := m.pattern(n, psegs[1:], segs[1:]); ok {
				return chain, true
			}
			m.undo(log)
		}
		// Then unconsumed: no capture recorded.
		return m.pattern(n, psegs[1:], segs)

	case pattern.KindWildcard:
		// A wildcard needs at least one remaining segment and always
		// terminates the chain at this node.
		if len(segs) == 0 {
			return nil, false
		}
		rest := strings.Join(segs, "/")
		m.set(nil, ps.Param, rest)
		m.rest = rest
		return []*RouteNode{n}, true

	default:
		return nil, false
	}
}

// complete finishes the match at n once its own pattern is exhausted:
// either the path is fully consumed here, or a child must take over.
func (m *matcher) complete(n *RouteNode, segs []string) ([]*RouteNode, bool) {
	if len(segs) == 0 {
		if idx := n.indexChild(); idx != nil {
			return []*RouteNode{n, idx}, true
		}
		return []*RouteNode{n}, true
	}

	next := segs[0]

	// (1) literal children equal to the next segment
	for _, c := range n.children {
		if c.index || c.pat.IsEmpty() {
			continue
		}
		if fs := c.pat.Segments[0]; fs.Kind == pattern.KindLiteral && fs.Literal == next {
			if chain, ok := m.node(c, segs); ok {
				return append([]*RouteNode{n}, chain...), true
			}
		}
	}

	// (2) required parameter children
	if chain, ok := m.childClass(n, segs, pattern.KindParam); ok {
		return chain, true
	}

	// (3) optional parameter children
	if chain, ok := m.childClass(n, segs, pattern.KindOptionalParam); ok {
		return chain, true
	}

	// (4) wildcard children
	if chain, ok := m.childClass(n, segs, pattern.KindWildcard); ok {
		return chain, true
	}

	return nil, false
}

// childClass tries every child whose first pattern segment has the given
// kind, in declaration order.
func (m *matcher) childClass(n *RouteNode, segs []string, kind pattern.Kind) ([]*RouteNode, bool) {
	for _, c := range n.children {
		if c.index || c.pat.IsEmpty() {
			continue
		}
		if c.pat.Segments[0].Kind != kind {
			continue
		}
		if chain, ok := m.node(c, segs); ok {
			return append([]*RouteNode{n}, chain...), true
		}
	}
	return nil, false
}

// splitPath splits a path into segments, ignoring leading and trailing
// slashes.
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
