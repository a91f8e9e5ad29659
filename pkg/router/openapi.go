package router

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

// OpenAPIInfo contains document metadata.
type OpenAPIInfo struct {
	Title       string
	Description string
	Version     string
}

// OpenAPIGenerator renders a built route tree as an OpenAPI 3.0 path
// listing. Routes resolve addresses rather than serve methods, so every
// path is listed under "get".
type OpenAPIGenerator struct {
	root *RouteNode
	info OpenAPIInfo
}

// NewOpenAPIGenerator creates a generator for a built tree.
func NewOpenAPIGenerator(root *RouteNode, info OpenAPIInfo) *OpenAPIGenerator {
	if info.Title == "" {
		info.Title = "Routes"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}
	return &OpenAPIGenerator{root: root, info: info}
}

// OpenAPISpec represents an OpenAPI 3.0 specification.
type OpenAPISpec struct {
	OpenAPI string                 `json:"openapi" yaml:"openapi"`
	Info    OpenAPISpecInfo        `json:"info" yaml:"info"`
	Paths   map[string]OpenAPIPath `json:"paths" yaml:"paths"`
}

// OpenAPISpecInfo contains document info.
type OpenAPISpecInfo struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// OpenAPIPath maps lowercase HTTP methods to operations.
type OpenAPIPath map[string]*OpenAPIOperation

// OpenAPIOperation represents one resolvable path shape.
type OpenAPIOperation struct {
	Summary     string                     `json:"summary,omitempty" yaml:"summary,omitempty"`
	OperationID string                     `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []OpenAPIParameter         `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   map[string]OpenAPIResponse `json:"responses" yaml:"responses"`
}

// OpenAPIParameter represents a path parameter.
type OpenAPIParameter struct {
	Name        string         `json:"name" yaml:"name"`
	In          string         `json:"in" yaml:"in"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *OpenAPISchema `json:"schema" yaml:"schema"`
}

// OpenAPIResponse represents a response.
type OpenAPIResponse struct {
	Description string `json:"description" yaml:"description"`
}

// OpenAPISchema represents a parameter schema.
type OpenAPISchema struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// pathShape is one concrete spelling of a route. Optional parameters
// fork a route into several shapes; the one with every optional present
// is canonical and carries the operationId.
type pathShape struct {
	path      string
	params    []OpenAPIParameter
	canonical bool
}

// Document builds the specification from the route tree. One path entry
// is produced per resolvable shape that carries a payload; index routes
// surface under their parent's path.
func (g *OpenAPIGenerator) Document() *OpenAPISpec {
	spec := &OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPISpecInfo{
			Title:       g.info.Title,
			Description: g.info.Description,
			Version:     g.info.Version,
		},
		Paths: make(map[string]OpenAPIPath),
	}

	if g.root == nil {
		return spec
	}

	g.root.Walk(func(n *RouteNode, trail []pattern.Pattern) bool {
		if n.IsIndex() {
			return true
		}
		payload := n.Payload()
		if idx := n.indexChild(); idx != nil && idx.Payload() != "" {
			payload = idx.Payload()
		}
		if payload == "" {
			return true
		}
		for _, shape := range expandTrail(trail) {
			op := &OpenAPIOperation{
				Summary:    payload,
				Parameters: shape.params,
				Responses: map[string]OpenAPIResponse{
					"200": {Description: "Route matched"},
				},
			}
			if shape.canonical {
				op.OperationID = payload
			}
			spec.Paths[shape.path] = OpenAPIPath{"get": op}
		}
		return true
	})

	return spec
}

// JSON renders the document as indented JSON.
func (g *OpenAPIGenerator) JSON() ([]byte, error) {
	return json.MarshalIndent(g.Document(), "", "  ")
}

// YAML renders the document as YAML.
func (g *OpenAPIGenerator) YAML() ([]byte, error) {
	return yaml.Marshal(g.Document())
}

// expandTrail converts a pattern trail into OpenAPI path shapes. Each
// optional parameter doubles the shapes, present and omitted, so adjacent
// optionals can list a shape the resolver would bind to the earlier name.
// Wildcards become a single {name} parameter; OpenAPI cannot spell a
// multi-segment capture, so the parameter description notes it.
func expandTrail(trail []pattern.Pattern) []pathShape {
	shapes := []pathShape{{canonical: true}}

	for _, p := range trail {
		for _, seg := range p.Segments {
			switch seg.Kind {
			case pattern.KindLiteral:
				for i := range shapes {
					shapes[i].path += "/" + seg.Literal
				}
			case pattern.KindParam:
				for i := range shapes {
					shapes[i].path += "/{" + seg.Param + "}"
					shapes[i].params = append(shapes[i].params, OpenAPIParameter{
						Name:     seg.Param,
						In:       "path",
						Required: true,
						Schema:   &OpenAPISchema{Type: "string"},
					})
				}
			case pattern.KindOptionalParam:
				withParam := make([]pathShape, 0, len(shapes)*2)
				for _, s := range shapes {
					omitted := pathShape{
						path:   s.path,
						params: append([]OpenAPIParameter(nil), s.params...),
					}
					s.path += "/{" + seg.Param + "}"
					s.params = append(s.params, OpenAPIParameter{
						Name:     seg.Param,
						In:       "path",
						Required: true,
						Schema:   &OpenAPISchema{Type: "string"},
					})
					withParam = append(withParam, s, omitted)
				}
				shapes = withParam
			case pattern.KindWildcard:
				for i := range shapes {
					shapes[i].path += "/{" + seg.Param + "}"
					shapes[i].params = append(shapes[i].params, OpenAPIParameter{
						Name:        seg.Param,
						In:          "path",
						Description: "remaining path, may span segments",
						Required:    true,
						Schema:      &OpenAPISchema{Type: "string"},
					})
				}
			}
		}
	}

	for i := range shapes {
		if shapes[i].path == "" {
			shapes[i].path = "/"
		}
	}
	return shapes
}
