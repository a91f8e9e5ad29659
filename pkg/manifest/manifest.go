package manifest

import (
	"github.com/callmeskyy111/wayfind/pkg/router"
)

// Manifest is a parsed route manifest.
type Manifest struct {
	// Routes are the top-level route entries in declaration order.
	Routes []Route `json:"routes" yaml:"routes" toml:"routes"`
}

// Route is one route entry. Entries nest: a child's pattern is resolved
// relative to its parent's.
type Route struct {
	// Path is the route pattern, relative to the parent entry. Index
	// entries leave it empty.
	Path string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty"`

	// Name identifies what the route renders. It becomes the payload of
	// the built route node.
	Name string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`

	// Index marks the default child of the parent entry.
	Index bool `json:"index,omitempty" yaml:"index,omitempty" toml:"index,omitempty"`

	// Children are nested entries, tried in order during resolution.
	Children []Route `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Decls converts the manifest into route declarations for router.BuildTree.
func (m *Manifest) Decls() []router.Decl {
	return routeDecls(m.Routes)
}

func routeDecls(routes []Route) []router.Decl {
	if len(routes) == 0 {
		return nil
	}
	decls := make([]router.Decl, len(routes))
	for i, r := range routes {
		decls[i] = router.Decl{
			Path:     r.Path,
			Index:    r.Index,
			Payload:  r.Name,
			Children: routeDecls(r.Children),
		}
	}
	return decls
}
