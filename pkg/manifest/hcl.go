package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/callmeskyy111/wayfind/internal/errors"
)

// hclManifest is the HCL decoding schema. Route blocks carry the pattern
// as their label and nest recursively.
type hclManifest struct {
	Routes []hclRoute `hcl:"route,block"`
}

type hclRoute struct {
	Path     string     `hcl:"path,label"`
	Name     string     `hcl:"name,optional"`
	Index    bool       `hcl:"index,optional"`
	Children []hclRoute `hcl:"route,block"`
}

// parseHCL decodes an HCL manifest. HCL blocks always need a label, so
// index routes use the label "/".
func parseHCL(data []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, hclParseError(diags, filename)
	}

	var hm hclManifest
	diags = gohcl.DecodeBody(file.Body, nil, &hm)
	if diags.HasErrors() {
		return nil, hclParseError(diags, filename)
	}

	m := &Manifest{}
	for _, r := range hm.Routes {
		m.Routes = append(m.Routes, r.route())
	}
	return m, nil
}

func (r hclRoute) route() Route {
	out := Route{Path: r.Path, Name: r.Name, Index: r.Index}
	for _, c := range r.Children {
		out.Children = append(out.Children, c.route())
	}
	return out
}

// hclParseError maps HCL diagnostics to a manifest error, pointing at the
// first diagnostic that carries a source range.
func hclParseError(diags hcl.Diagnostics, filename string) *errors.WayfindError {
	we := errors.New("E042").Wrap(diags).WithDetail(diags.Error())

	if filename != "" {
		for _, d := range diags {
			if d.Subject != nil {
				we = we.WithLocation(filename, d.Subject.Start.Line, d.Subject.Start.Column)
				break
			}
		}
	}
	return we
}
