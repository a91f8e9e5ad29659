package router

import (
	"sort"
	"strings"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

// RouteInfo describes one route of a built tree for display, diagnostics
// and the routes endpoint.
type RouteInfo struct {
	// Path is the full pattern path from the root.
	Path string `json:"path"`

	// Payload is the route's opaque render identifier, if any.
	Payload string `json:"payload,omitempty"`

	// Index marks an index route.
	Index bool `json:"index,omitempty"`

	// Specificity is the route's diagnostic score, higher is more
	// specific.
	Specificity int `json:"specificity"`
}

// Routes flattens the tree into a table in declaration order. The
// synthetic root is skipped.
func Routes(root *RouteNode) []RouteInfo {
	if root == nil {
		return nil
	}

	var out []RouteInfo
	root.Walk(func(n *RouteNode, trail []pattern.Pattern) bool {
		if n == root {
			return true
		}
		out = append(out, RouteInfo{
			Path:        joinTrail(trail),
			Payload:     n.payload,
			Index:       n.index,
			Specificity: trailSpecificity(trail),
		})
		return true
	})
	return out
}

// SortBySpecificity orders a route table most specific first. The sort is
// stable, so declaration order survives among equal scores.
func SortBySpecificity(routes []RouteInfo) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Specificity > routes[j].Specificity
	})
}

// joinTrail joins accumulated patterns into one display path.
func joinTrail(trail []pattern.Pattern) string {
	if len(trail) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, p := range trail {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// trailSpecificity scores a whole pattern trail. A trail ending in a
// wildcard scores zero, like the single-pattern case.
func trailSpecificity(trail []pattern.Pattern) int {
	if len(trail) > 0 && trail[len(trail)-1].HasWildcard() {
		return 0
	}
	score := 0
	for _, p := range trail {
		score += Specificity(p)
	}
	return score
}
