package router

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

func TestNewOpenAPIGenerator(t *testing.T) {
	root := mustTree(t, []Decl{{Path: "/about", Payload: "about"}})
	gen := NewOpenAPIGenerator(root, OpenAPIInfo{
		Title:   "My Routes",
		Version: "2.0.0",
	})

	if gen == nil {
		t.Fatal("NewOpenAPIGenerator returned nil")
	}
	if gen.info.Title != "My Routes" {
		t.Errorf("Title = %q, want %q", gen.info.Title, "My Routes")
	}
	if gen.info.Version != "2.0.0" {
		t.Errorf("Version = %q, want %q", gen.info.Version, "2.0.0")
	}
}

func TestNewOpenAPIGeneratorDefaults(t *testing.T) {
	gen := NewOpenAPIGenerator(nil, OpenAPIInfo{})

	if gen.info.Title != "Routes" {
		t.Errorf("Default Title = %q, want %q", gen.info.Title, "Routes")
	}
	if gen.info.Version != "1.0.0" {
		t.Errorf("Default Version = %q, want %q", gen.info.Version, "1.0.0")
	}
}

func TestOpenAPIDocument(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "/", Index: true, Payload: "home"},
		{Path: "/about", Payload: "about"},
		{Path: "/users", Children: []Decl{
			{Path: "/", Index: true, Payload: "users-index"},
			{Path: "/:id", Payload: "user"},
		}},
		{Path: "/files/*path", Payload: "files"},
	})

	gen := NewOpenAPIGenerator(root, OpenAPIInfo{
		Title:       "Test Routes",
		Description: "Route listing",
		Version:     "1.0.0",
	})
	doc := gen.Document()

	if doc.OpenAPI != "3.0.3" {
		t.Errorf("OpenAPI version = %q, want %q", doc.OpenAPI, "3.0.3")
	}
	if doc.Info.Title != "Test Routes" {
		t.Errorf("Info.Title = %q, want %q", doc.Info.Title, "Test Routes")
	}
	if doc.Info.Description != "Route listing" {
		t.Errorf("Info.Description = %q, want %q", doc.Info.Description, "Route listing")
	}

	wantPaths := []string{"/", "/about", "/users", "/users/{id}", "/files/{path}"}
	if len(doc.Paths) != len(wantPaths) {
		t.Errorf("len(Paths) = %d, want %d (%v)", len(doc.Paths), len(wantPaths), doc.Paths)
	}
	for _, p := range wantPaths {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("missing path %q", p)
		}
	}

	rootOp := doc.Paths["/"]["get"]
	if rootOp == nil {
		t.Fatal("missing get operation for /")
	}
	if rootOp.Summary != "home" {
		t.Errorf("/ summary = %q, want %q", rootOp.Summary, "home")
	}

	usersOp := doc.Paths["/users"]["get"]
	if usersOp == nil {
		t.Fatal("missing get operation for /users")
	}
	if usersOp.Summary != "users-index" {
		t.Errorf("/users summary = %q, want %q", usersOp.Summary, "users-index")
	}

	userOp := doc.Paths["/users/{id}"]["get"]
	if userOp == nil {
		t.Fatal("missing get operation for /users/{id}")
	}
	if len(userOp.Parameters) != 1 || userOp.Parameters[0].Name != "id" {
		t.Errorf("/users/{id} parameters = %v, want one named id", userOp.Parameters)
	}
	if !userOp.Parameters[0].Required {
		t.Error("/users/{id} id parameter should be required")
	}
	if userOp.OperationID != "user" {
		t.Errorf("operationId = %q, want %q", userOp.OperationID, "user")
	}

	filesOp := doc.Paths["/files/{path}"]["get"]
	if filesOp == nil {
		t.Fatal("missing get operation for /files/{path}")
	}
	if len(filesOp.Parameters) != 1 || filesOp.Parameters[0].Description == "" {
		t.Errorf("wildcard parameter should carry a description, got %v", filesOp.Parameters)
	}
}

func TestOpenAPIDocumentOptionalParam(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "/users/:id/:name?", Payload: "user"},
	})

	doc := NewOpenAPIGenerator(root, OpenAPIInfo{}).Document()

	full, ok := doc.Paths["/users/{id}/{name}"]
	if !ok {
		t.Fatalf("missing full shape, paths = %v", doc.Paths)
	}
	short, ok := doc.Paths["/users/{id}"]
	if !ok {
		t.Fatalf("missing omitted shape, paths = %v", doc.Paths)
	}

	// Only the shape with every optional present carries the operationId.
	if got := full["get"].OperationID; got != "user" {
		t.Errorf("full shape operationId = %q, want %q", got, "user")
	}
	if got := short["get"].OperationID; got != "" {
		t.Errorf("omitted shape operationId = %q, want empty", got)
	}
	if n := len(full["get"].Parameters); n != 2 {
		t.Errorf("full shape parameter count = %d, want 2", n)
	}
	if n := len(short["get"].Parameters); n != 1 {
		t.Errorf("omitted shape parameter count = %d, want 1", n)
	}
}

func TestOpenAPIDocumentSkipsPayloadless(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "/admin", Children: []Decl{
			{Path: "/settings", Payload: "settings"},
		}},
	})

	doc := NewOpenAPIGenerator(root, OpenAPIInfo{}).Document()

	if _, ok := doc.Paths["/admin"]; ok {
		t.Error("payload-less branch /admin should not be listed")
	}
	if _, ok := doc.Paths["/admin/settings"]; !ok {
		t.Errorf("missing /admin/settings, paths = %v", doc.Paths)
	}
}

func TestOpenAPIJSON(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "/users/:id", Payload: "user"},
	})

	data, err := NewOpenAPIGenerator(root, OpenAPIInfo{Title: "Test"}).JSON()
	if err != nil {
		t.Fatalf("JSON error: %v", err)
	}

	var doc OpenAPISpec
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output does not parse back: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, `"openapi": "3.0.3"`) {
		t.Error("missing openapi version in output")
	}
	if !strings.Contains(out, `"title": "Test"`) {
		t.Error("missing title in output")
	}
	if !strings.Contains(out, `"/users/{id}"`) {
		t.Error("missing path in output")
	}
	if !strings.Contains(out, `"operationId": "user"`) {
		t.Error("missing operationId in output")
	}
}

func TestOpenAPIYAML(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "/users/:id", Payload: "user"},
	})

	data, err := NewOpenAPIGenerator(root, OpenAPIInfo{Title: "Test"}).YAML()
	if err != nil {
		t.Fatalf("YAML error: %v", err)
	}

	var doc OpenAPISpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output does not parse back: %v", err)
	}
	if doc.Info.Title != "Test" {
		t.Errorf("round-tripped title = %q, want %q", doc.Info.Title, "Test")
	}
	if _, ok := doc.Paths["/users/{id}"]; !ok {
		t.Errorf("round-tripped paths = %v, want /users/{id}", doc.Paths)
	}
}

func TestExpandTrail(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantPaths []string
	}{
		{
			name:      "literal",
			path:      "/docs/guide",
			wantPaths: []string{"/docs/guide"},
		},
		{
			name:      "param",
			path:      "/users/:id",
			wantPaths: []string{"/users/{id}"},
		},
		{
			name:      "optional forks",
			path:      "/posts/:slug?",
			wantPaths: []string{"/posts/{slug}", "/posts"},
		},
		{
			name:      "two optionals fork to four",
			path:      "/a/:x?/:y?",
			wantPaths: []string{"/a/{x}/{y}", "/a/{x}", "/a/{y}", "/a"},
		},
		{
			name:      "wildcard",
			path:      "/files/*rest",
			wantPaths: []string{"/files/{rest}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustTree(t, []Decl{{Path: tt.path, Payload: "p"}})
			node := root.Children()[0]
			shapes := expandTrail([]pattern.Pattern{node.Pattern()})

			if len(shapes) != len(tt.wantPaths) {
				t.Fatalf("shape count = %d, want %d", len(shapes), len(tt.wantPaths))
			}
			got := make(map[string]bool, len(shapes))
			for _, s := range shapes {
				got[s.path] = true
			}
			for _, want := range tt.wantPaths {
				if !got[want] {
					t.Errorf("missing shape %q, got %v", want, got)
				}
			}
		})
	}
}
