package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/callmeskyy111/wayfind/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Manifest is the route manifest file name, e.g. "routes.yaml".
	Manifest string

	// Port is the route server port.
	Port int
}

// Template is a starter layout for one manifest format.
type Template struct {
	// Name is the template name, matching the manifest format.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

// ManifestFile returns the manifest file name this template writes for
// the given project, e.g. "routes.yaml".
func (t *Template) ManifestFile() string {
	return "routes." + t.Name
}

// Available templates, one per manifest format.
var templates = map[string]*Template{
	"yaml": yamlTemplate(),
	"json": jsonTemplate(),
	"toml": tomlTemplate(),
	"hcl":  hclTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.Newf(errors.CategoryCLI, "unknown manifest format %q", name).
			WithSuggestion("Available formats: yaml, json, toml, hcl")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create generates the project files from the template.
func (t *Template) Create(dir string, cfg Config) error {
	for relPath, content := range t.Files {
		tmpl, err := template.New(relPath).Parse(content)
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}

		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

// configFile is the wayfind.json starter, shared by every template.
const configFile = `{
  "name": "{{.ProjectName}}",
  "manifest": "{{.Manifest}}",
  "server": {
    "host": "localhost",
    "port": {{.Port}}
  },
  "archive": {
    "backend": "disk",
    "dir": ".wayfind/archive"
  },
  "log": {
    "level": "info",
    "format": "text"
  }
}
`

// yamlTemplate returns the YAML manifest starter.
func yamlTemplate() *Template {
	return &Template{
		Name:        "yaml",
		Description: "Route manifest in YAML",
		Files: map[string]string{
			"wayfind.json": configFile,
			"routes.yaml": `# Route manifest for {{.ProjectName}}.
#
# Patterns are slash-separated: literals, :param, :param? and a
# trailing *rest wildcard. Index entries mark a parent's default child.
routes:
  - index: true
    name: home
  - path: about
    name: about
  - path: users
    name: users
    children:
      - index: true
        name: users-index
      - path: :id
        name: user
  - path: docs/*rest
    name: docs
`,
		},
	}
}

// jsonTemplate returns the JSON manifest starter.
func jsonTemplate() *Template {
	return &Template{
		Name:        "json",
		Description: "Route manifest in JSON",
		Files: map[string]string{
			"wayfind.json": configFile,
			"routes.json": `{
  "routes": [
    {"index": true, "name": "home"},
    {"path": "about", "name": "about"},
    {"path": "users", "name": "users", "children": [
      {"index": true, "name": "users-index"},
      {"path": ":id", "name": "user"}
    ]},
    {"path": "docs/*rest", "name": "docs"}
  ]
}
`,
		},
	}
}

// tomlTemplate returns the TOML manifest starter.
func tomlTemplate() *Template {
	return &Template{
		Name:        "toml",
		Description: "Route manifest in TOML",
		Files: map[string]string{
			"wayfind.json": configFile,
			"routes.toml": `# Route manifest for {{.ProjectName}}.

[[routes]]
index = true
name = "home"

[[routes]]
path = "about"
name = "about"

[[routes]]
path = "users"
name = "users"

[[routes.children]]
index = true
name = "users-index"

[[routes.children]]
path = ":id"
name = "user"

[[routes]]
path = "docs/*rest"
name = "docs"
`,
		},
	}
}

// hclTemplate returns the HCL manifest starter. HCL blocks always carry
// a label, so index routes use "/".
func hclTemplate() *Template {
	return &Template{
		Name:        "hcl",
		Description: "Route manifest in HCL",
		Files: map[string]string{
			"wayfind.json": configFile,
			"routes.hcl": `# Route manifest for {{.ProjectName}}.

route "/" {
  index = true
  name  = "home"
}

route "about" {
  name = "about"
}

route "users" {
  name = "users"

  route "/" {
    index = true
    name  = "users-index"
  }

  route ":id" {
    name = "user"
  }
}

route "docs/*rest" {
  name = "docs"
}
`,
		},
	}
}
