package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	wayfinderrors "github.com/callmeskyy111/wayfind/internal/errors"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

const yamlManifest = `routes:
  - index: true
    name: home
  - path: users
    name: users
    children:
      - index: true
        name: users-index
      - path: :id
        name: user
  - path: files/*path
    name: file
`

const jsonManifest = `{
  "routes": [
    {"index": true, "name": "home"},
    {"path": "users", "name": "users", "children": [
      {"index": true, "name": "users-index"},
      {"path": ":id", "name": "user"}
    ]},
    {"path": "files/*path", "name": "file"}
  ]
}
`

const tomlManifest = `[[routes]]
index = true
name = "home"

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
path = "files/*path"
name = "file"
`

const hclManifestSrc = `route "/" {
  index = true
  name  = "home"
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

route "files/*path" {
  name = "file"
}
`

func TestParseFormatsResolveAlike(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		data   string
	}{
		{"json", FormatJSON, jsonManifest},
		{"yaml", FormatYAML, yamlManifest},
		{"toml", FormatTOML, tomlManifest},
		{"hcl", FormatHCL, hclManifestSrc},
	}

	checks := []struct {
		path    string
		payload string
	}{
		{"/", "home"},
		{"/users", "users-index"},
		{"/users/42", "user"},
		{"/files/docs/a.txt", "file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := Parse([]byte(tc.data), tc.format, "routes."+string(tc.format))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(m.Routes) != 3 {
				t.Fatalf("len(Routes) = %d, want 3", len(m.Routes))
			}

			root, err := router.BuildTree(m.Decls())
			if err != nil {
				t.Fatalf("BuildTree: %v", err)
			}

			for _, c := range checks {
				res := router.Resolve(root, c.path)
				if !res.Matched {
					t.Fatalf("Resolve(%q) did not match", c.path)
				}
				if got := res.Leaf().Payload(); got != c.payload {
					t.Errorf("Resolve(%q) payload = %q, want %q", c.path, got, c.payload)
				}
			}
		})
	}
}

func TestParseYAMLStructure(t *testing.T) {
	m, err := Parse([]byte(yamlManifest), FormatYAML, "routes.yaml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	users := m.Routes[1]
	if users.Path != "users" || users.Name != "users" {
		t.Errorf("users route = %+v", users)
	}
	if len(users.Children) != 2 {
		t.Fatalf("len(users.Children) = %d, want 2", len(users.Children))
	}
	if !users.Children[0].Index {
		t.Error("first child should be an index route")
	}
	if users.Children[1].Path != ":id" {
		t.Errorf("second child path = %q, want %q", users.Children[1].Path, ":id")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name         string
		format       Format
		data         string
		wantCode     string
		wantLocation bool
	}{
		{
			name:         "truncated json",
			format:       FormatJSON,
			data:         `{"routes": [`,
			wantCode:     "E042",
			wantLocation: true,
		},
		{
			name:     "json wrong type",
			format:   FormatJSON,
			data:     `{"routes": 42}`,
			wantCode: "E042",
		},
		{
			name:         "yaml tab indent",
			format:       FormatYAML,
			data:         "routes:\n\t- path: users",
			wantCode:     "E042",
			wantLocation: true,
		},
		{
			name:         "toml missing value",
			format:       FormatTOML,
			data:         "[[routes]]\npath =",
			wantCode:     "E042",
			wantLocation: true,
		},
		{
			name:         "hcl unclosed block",
			format:       FormatHCL,
			data:         "route \"users\" {\n  name = \"users\"\n",
			wantCode:     "E042",
			wantLocation: true,
		},
		{
			name:     "unknown format",
			format:   Format("ini"),
			data:     "[routes]",
			wantCode: "E041",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, "routes.test")
			if err == nil {
				t.Fatal("Parse should fail")
			}

			var we *wayfinderrors.WayfindError
			if !errors.As(err, &we) {
				t.Fatalf("error type %T, want *WayfindError", err)
			}
			if we.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", we.Code, tt.wantCode)
			}
			if tt.wantLocation {
				if we.Location == nil {
					t.Fatal("Location should be set")
				}
				if we.Location.Line <= 0 {
					t.Errorf("Location.Line = %d, want > 0", we.Location.Line)
				}
			}
		})
	}
}

func TestParseEmptyRoutes(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"yaml empty list", FormatYAML, "routes: []\n"},
		{"yaml empty file", FormatYAML, ""},
		{"json empty list", FormatJSON, `{"routes": []}`},
		{"toml empty file", FormatTOML, ""},
		{"hcl empty file", FormatHCL, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format, "routes.test")
			if err == nil {
				t.Fatal("Parse should fail")
			}
			var we *wayfinderrors.WayfindError
			if !errors.As(err, &we) {
				t.Fatalf("error type %T, want *WayfindError", err)
			}
			if we.Code != "E043" {
				t.Errorf("Code = %q, want E043", we.Code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "routes.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(yamlPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Routes) != 3 {
		t.Errorf("len(Routes) = %d, want 3", len(m.Routes))
	}

	jsonPath := filepath.Join(dir, "routes.json")
	if err := os.WriteFile(jsonPath, []byte(jsonManifest), 0644); err != nil {
		t.Fatal(err)
	}

	m, err = Load(jsonPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(m.Routes) != 3 {
		t.Errorf("len(Routes) = %d, want 3", len(m.Routes))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "routes.yaml"))
	if err == nil {
		t.Fatal("Load should fail")
	}

	var we *wayfinderrors.WayfindError
	if !errors.As(err, &we) {
		t.Fatalf("error type %T, want *WayfindError", err)
	}
	if we.Code != "E040" {
		t.Errorf("Code = %q, want E040", we.Code)
	}
}

func TestLoadUnknownExtension(t *testing.T) {
	_, err := Load("routes.txt")
	if err == nil {
		t.Fatal("Load should fail")
	}

	var we *wayfinderrors.WayfindError
	if !errors.As(err, &we) {
		t.Fatalf("error type %T, want *WayfindError", err)
	}
	if we.Code != "E041" {
		t.Errorf("Code = %q, want E041", we.Code)
	}
}

func TestLoadErrorPointsIntoFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.yaml")
	broken := "routes:\n  - path: users\n\t- path: about\n"
	if err := os.WriteFile(path, []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load should fail")
	}

	var we *wayfinderrors.WayfindError
	if !errors.As(err, &we) {
		t.Fatalf("error type %T, want *WayfindError", err)
	}
	if we.Location == nil {
		t.Fatal("Location should be set")
	}
	if we.Location.File != path {
		t.Errorf("Location.File = %q, want %q", we.Location.File, path)
	}
	if len(we.Context) == 0 {
		t.Error("Context should hold the surrounding manifest lines")
	}
}

func TestDecls(t *testing.T) {
	m := &Manifest{
		Routes: []Route{
			{Index: true, Name: "home"},
			{Path: "users", Name: "users", Children: []Route{
				{Path: ":id", Name: "user"},
			}},
		},
	}

	want := []router.Decl{
		{Index: true, Payload: "home"},
		{Path: "users", Payload: "users", Children: []router.Decl{
			{Path: ":id", Payload: "user"},
		}},
	}

	if got := m.Decls(); !reflect.DeepEqual(got, want) {
		t.Errorf("Decls() = %+v, want %+v", got, want)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"routes.json", FormatJSON, true},
		{"routes.yaml", FormatYAML, true},
		{"routes.yml", FormatYAML, true},
		{"routes.toml", FormatTOML, true},
		{"routes.hcl", FormatHCL, true},
		{"ROUTES.YAML", FormatYAML, true},
		{"config/routes.json", FormatJSON, true},
		{"routes.txt", "", false},
		{"routes", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatForPath(tt.path)
			if ok != tt.ok || got != tt.want {
				t.Errorf("FormatForPath(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
			}
		})
	}
}
