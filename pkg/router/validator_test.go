package router

import (
	"strings"
	"testing"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

func findIssue(issues []Issue, typ IssueType) *Issue {
	for i := range issues {
		if issues[i].Type == typ {
			return &issues[i]
		}
	}
	return nil
}

func TestValidateCleanTree(t *testing.T) {
	root := demoTree(t)
	if issues := Validate(root); len(issues) != 0 {
		t.Errorf("Validate returned %d issues for a clean tree: %v", len(issues), issues)
	}
	if err := ValidateStrict(root); err != nil {
		t.Errorf("ValidateStrict = %v, want nil", err)
	}
}

func TestValidateDuplicateSiblings(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "users/:id", Payload: "a"},
		{Path: "users/:id", Payload: "b"},
	})

	issues := Validate(root)
	dup := findIssue(issues, IssueDuplicateRoute)
	if dup == nil {
		t.Fatalf("no DUPLICATE_ROUTE issue in %v", issues)
	}
	if !strings.Contains(dup.Message, "/users/:id") {
		t.Errorf("message = %q, want it to name the pattern", dup.Message)
	}
}

func TestValidateUnreachableUnderWildcard(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "files/*rest", Payload: "files", Children: []Decl{
			{Path: "deep", Payload: "dead"},
		}},
	})

	issues := Validate(root)
	if findIssue(issues, IssueUnreachableRoute) == nil {
		t.Fatalf("no UNREACHABLE_ROUTE issue in %v", issues)
	}
}

func TestValidateShadowedWildcardSibling(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "*a", Payload: "first"},
		{Path: "*b", Payload: "second"},
	})

	issues := Validate(root)
	issue := findIssue(issues, IssueUnreachableRoute)
	if issue == nil {
		t.Fatalf("no UNREACHABLE_ROUTE issue in %v", issues)
	}
	if !strings.Contains(issue.Message, "*b") {
		t.Errorf("message = %q, want it to name the shadowed wildcard", issue.Message)
	}
}

func TestValidateDuplicatePayload(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "a", Payload: "page"},
		{Path: "b", Payload: "page"},
	})

	issues := Validate(root)
	issue := findIssue(issues, IssueDuplicatePayload)
	if issue == nil {
		t.Fatalf("no DUPLICATE_PAYLOAD issue in %v", issues)
	}
	if !strings.Contains(issue.Details, "/a") {
		t.Errorf("details = %q, want the first declaration path", issue.Details)
	}
}

func TestValidateStrictReportsAll(t *testing.T) {
	root := mustTree(t, []Decl{
		{Path: "x", Payload: "p"},
		{Path: "x", Payload: "p"},
	})

	err := ValidateStrict(root)
	if err == nil {
		t.Fatal("ValidateStrict = nil, want error")
	}
	multi, ok := err.(*MultiIssueError)
	if !ok {
		t.Fatalf("error type = %T, want *MultiIssueError", err)
	}
	// Duplicate pattern and duplicate payload.
	if len(multi.Issues) != 2 {
		t.Errorf("len(Issues) = %d, want 2: %v", len(multi.Issues), multi.Issues)
	}
	if !strings.Contains(multi.Error(), "2 route validation issues") {
		t.Errorf("Error() = %q", multi.Error())
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		a, b string // a must score strictly higher than b
	}{
		{"/users/profile", "/users/:id"},
		{"/users/:id", "/users/:id?"},
		{"/users/:id", "/users/*rest"},
		{"/users/profile/settings", "/users/profile"},
		{"/about", "/*"},
	}

	for _, tt := range tests {
		pa := pattern.MustCompile(tt.a)
		pb := pattern.MustCompile(tt.b)
		if sa, sb := Specificity(pa), Specificity(pb); sa <= sb {
			t.Errorf("Specificity(%q) = %d, not above Specificity(%q) = %d", tt.a, sa, tt.b, sb)
		}
	}

	if got := Specificity(pattern.MustCompile("/files/*rest")); got != 0 {
		t.Errorf("wildcard specificity = %d, want 0", got)
	}
}

func TestRoutesTable(t *testing.T) {
	root := demoTree(t)
	routes := Routes(root)

	byPath := make(map[string]RouteInfo, len(routes))
	for _, r := range routes {
		byPath[r.Path] = r
	}

	user, ok := byPath["/users/:id/:name?"]
	if !ok {
		t.Fatalf("route table misses /users/:id/:name?: %v", routes)
	}
	if user.Payload != "user" {
		t.Errorf("payload = %q, want %q", user.Payload, "user")
	}

	idx, ok := byPath["/"]
	if !ok || !idx.Index {
		t.Errorf("route table misses the root index route: %v", routes)
	}

	college := byPath["/college/*"]
	if college.Specificity != 0 {
		t.Errorf("wildcard route specificity = %d, want 0", college.Specificity)
	}

	SortBySpecificity(routes)
	for i := 1; i < len(routes); i++ {
		if routes[i-1].Specificity < routes[i].Specificity {
			t.Errorf("routes not sorted at %d: %v", i, routes)
		}
	}
	if routes[len(routes)-1].Path != "/college/*" {
		t.Errorf("wildcard should sort last, got %v", routes[len(routes)-1])
	}
}

func TestFormatIssue(t *testing.T) {
	out := FormatIssue(Issue{
		Type:    IssueDuplicateRoute,
		Message: `duplicate sibling pattern "/x"`,
		Path:    "/",
		Details: "first declared at /",
	})
	if !strings.Contains(out, "WARN:") || !strings.Contains(out, "Details:") {
		t.Errorf("FormatIssue output = %q", out)
	}
}
