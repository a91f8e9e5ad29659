package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/callmeskyy111/wayfind/pkg/nav"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

func testTree(t *testing.T) *router.RouteNode {
	t.Helper()
	root, err := router.BuildTree([]router.Decl{
		{Index: true, Payload: "home"},
		{Path: "users", Payload: "users", Children: []router.Decl{
			{Index: true, Payload: "users-index"},
			{Path: ":id", Payload: "user"},
		}},
		{Path: "files/*path", Payload: "file"},
	})
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	return root
}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := nav.NewSession(nav.Location{Path: "/"}, nav.WithLogger(logger))
	srv := New(testTree(t), session, &Config{Logger: logger})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return srv, ts
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestHandleResolve(t *testing.T) {
	_, ts := newTestServer(t)

	t.Run("matched param route", func(t *testing.T) {
		var res ResolveResponse
		status := getJSON(t, ts.URL+"/resolve?path=/users/42", &res)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if !res.Matched {
			t.Fatal("expected a match")
		}
		if res.Path != "/users/42" {
			t.Errorf("Path = %q, want /users/42", res.Path)
		}
		if res.Changed {
			t.Error("Changed = true for an already canonical path")
		}
		if got := res.Params["id"]; got != "42" {
			t.Errorf("Params[id] = %q, want 42", got)
		}
		want := []string{"users", "user"}
		if len(res.Payloads) != len(want) {
			t.Fatalf("Payloads = %v, want %v", res.Payloads, want)
		}
		for i := range want {
			if res.Payloads[i] != want[i] {
				t.Errorf("Payloads[%d] = %q, want %q", i, res.Payloads[i], want[i])
			}
		}
	})

	t.Run("canonical rewrite", func(t *testing.T) {
		var res ResolveResponse
		status := getJSON(t, ts.URL+"/resolve?path=//users/", &res)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if !res.Changed {
			t.Error("expected Changed for //users/")
		}
		if res.Path != "/users" {
			t.Errorf("Path = %q, want /users", res.Path)
		}
		if !res.Matched {
			t.Error("expected /users to match the index route")
		}
	})

	t.Run("query passthrough", func(t *testing.T) {
		var res ResolveResponse
		getJSON(t, ts.URL+"/resolve?path=/users/42?tab=posts", &res)
		if res.Path != "/users/42" {
			t.Errorf("Path = %q, want /users/42", res.Path)
		}
		if res.Query != "tab=posts" {
			t.Errorf("Query = %q, want tab=posts", res.Query)
		}
	})

	t.Run("wildcard rest", func(t *testing.T) {
		var res ResolveResponse
		getJSON(t, ts.URL+"/resolve?path=/files/docs/readme.md", &res)
		if !res.Matched {
			t.Fatal("expected wildcard match")
		}
		if res.Rest != "docs/readme.md" {
			t.Errorf("Rest = %q, want docs/readme.md", res.Rest)
		}
	})

	t.Run("unmatched", func(t *testing.T) {
		var res ResolveResponse
		status := getJSON(t, ts.URL+"/resolve?path=/nope", &res)
		if status != http.StatusOK {
			t.Fatalf("status = %d, want 200", status)
		}
		if res.Matched {
			t.Error("expected no match for /nope")
		}
		if len(res.Payloads) != 0 {
			t.Errorf("Payloads = %v, want empty", res.Payloads)
		}
	})

	t.Run("missing path parameter", func(t *testing.T) {
		var body map[string]string
		status := getJSON(t, ts.URL+"/resolve", &body)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] == "" {
			t.Error("expected an error message")
		}
	})

	t.Run("path escaping root", func(t *testing.T) {
		var body map[string]string
		status := getJSON(t, ts.URL+"/resolve?path=/a/../..", &body)
		if status != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", status)
		}
		if body["error"] == "" {
			t.Error("expected an error message")
		}
	})
}

func TestHandleRoutes(t *testing.T) {
	_, ts := newTestServer(t)

	var res RoutesResponse
	status := getJSON(t, ts.URL+"/routes", &res)
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(res.Routes) != 5 {
		t.Fatalf("got %d routes, want 5", len(res.Routes))
	}
	for i := 1; i < len(res.Routes); i++ {
		if res.Routes[i].Specificity > res.Routes[i-1].Specificity {
			t.Errorf("routes not sorted: %d before %d",
				res.Routes[i-1].Specificity, res.Routes[i].Specificity)
		}
	}
	if last := res.Routes[len(res.Routes)-1]; last.Payload != "file" {
		t.Errorf("last route = %q, want the wildcard route", last.Payload)
	}
}

func TestHandleHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	// Generate at least one observed request first.
	var res ResolveResponse
	getJSON(t, ts.URL+"/resolve?path=/users/1", &res)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "wayfind_http_requests_in_flight") {
		t.Error("expected wayfind metrics in /metrics output")
	}
}

func TestServerAccessors(t *testing.T) {
	srv, _ := newTestServer(t)

	if srv.Session() == nil {
		t.Error("Session() returned nil")
	}
	if srv.Config() == nil {
		t.Error("Config() returned nil")
	}
	if srv.Logger() == nil {
		t.Error("Logger() returned nil")
	}
}

func TestServerCloseIdempotent(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := nav.NewSession(nav.Location{Path: "/"}, nav.WithLogger(logger))
	srv := New(testTree(t), session, &Config{Logger: logger})

	srv.Close()
	srv.Close()

	// Session events after close must not reach the closed server.
	session.Push(nav.Location{Path: "/after"})
}
