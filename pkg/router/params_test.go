package router

import (
	"reflect"
	"strings"
	"testing"
)

func TestBindParams(t *testing.T) {
	type userParams struct {
		ID     int     `param:"id"`
		Name   string  `param:"name"`
		Score  float64 `param:"score"`
		Active bool    `param:"active"`
		Count  uint    `param:"count"`
	}

	params := map[string]string{
		"id":     "123",
		"name":   "Jane",
		"score":  "4.5",
		"active": "true",
		"count":  "9",
	}

	var p userParams
	if err := BindParams(params, &p); err != nil {
		t.Fatalf("BindParams: %v", err)
	}

	if p.ID != 123 {
		t.Errorf("ID = %d, want 123", p.ID)
	}
	if p.Name != "Jane" {
		t.Errorf("Name = %q, want %q", p.Name, "Jane")
	}
	if p.Score != 4.5 {
		t.Errorf("Score = %v, want 4.5", p.Score)
	}
	if !p.Active {
		t.Error("Active = false, want true")
	}
	if p.Count != 9 {
		t.Errorf("Count = %d, want 9", p.Count)
	}
}

func TestBindParamsOptionalAbsent(t *testing.T) {
	type userParams struct {
		ID   int    `param:"id"`
		Name string `param:"name"`
	}

	var p userParams
	if err := BindParams(map[string]string{"id": "7"}, &p); err != nil {
		t.Fatalf("BindParams: %v", err)
	}
	if p.ID != 7 {
		t.Errorf("ID = %d, want 7", p.ID)
	}
	if p.Name != "" {
		t.Errorf("Name = %q, want zero value", p.Name)
	}
}

func TestBindParamsWildcardSlice(t *testing.T) {
	type fileParams struct {
		Rest []string `param:"rest"`
	}

	var p fileParams
	if err := BindParams(map[string]string{"rest": "a/b/c"}, &p); err != nil {
		t.Fatalf("BindParams: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(p.Rest, want) {
		t.Errorf("Rest = %v, want %v", p.Rest, want)
	}
}

func TestBindParamsErrors(t *testing.T) {
	type intParams struct {
		ID int `param:"id"`
	}

	var p intParams
	err := BindParams(map[string]string{"id": "abc"}, &p)
	if err == nil {
		t.Fatal("expected error for non-numeric value")
	}
	if !strings.Contains(err.Error(), `binding param "id"`) {
		t.Errorf("error = %q, want it to name the param", err)
	}

	if err := BindParams(map[string]string{"id": "1"}, p); err == nil {
		t.Error("expected error for non-pointer target")
	}

	x := 5
	if err := BindParams(map[string]string{"id": "1"}, &x); err == nil {
		t.Error("expected error for pointer to non-struct")
	}
}

func TestBindParamsUntaggedAndNil(t *testing.T) {
	type mixed struct {
		Tagged   string `param:"a"`
		Untagged string
	}

	var p mixed
	if err := BindParams(map[string]string{"a": "x", "Untagged": "y"}, &p); err != nil {
		t.Fatalf("BindParams: %v", err)
	}
	if p.Tagged != "x" {
		t.Errorf("Tagged = %q, want %q", p.Tagged, "x")
	}
	if p.Untagged != "" {
		t.Errorf("Untagged = %q, want zero value", p.Untagged)
	}

	if err := BindParams(nil, nil); err != nil {
		t.Errorf("BindParams(nil, nil) = %v, want nil", err)
	}
}

func TestBindParamsFromResolve(t *testing.T) {
	root := demoTree(t)
	m := Resolve(root, "/users/42/Ada")
	if !m.Matched {
		t.Fatal("expected match")
	}

	type userParams struct {
		ID   int    `param:"id"`
		Name string `param:"name"`
	}
	var p userParams
	if err := BindParams(m.Params, &p); err != nil {
		t.Fatalf("BindParams: %v", err)
	}
	if p.ID != 42 || p.Name != "Ada" {
		t.Errorf("bound params = %+v, want ID=42 Name=Ada", p)
	}
}
