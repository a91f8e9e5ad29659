package router

import (
	"fmt"
	"strings"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

// =============================================================================
// Route Tree Validation
// =============================================================================

// IssueType categorizes validation issues.
type IssueType string

const (
	// IssueDuplicateRoute indicates two siblings declare the same pattern.
	// The second sibling can only match when the first one's subtree fails.
	IssueDuplicateRoute IssueType = "DUPLICATE_ROUTE"

	// IssueUnreachableRoute indicates a route that resolution can never
	// reach, such as a non-index child of a wildcard route or a second
	// wildcard sibling.
	IssueUnreachableRoute IssueType = "UNREACHABLE_ROUTE"

	// IssueDuplicatePayload indicates two routes share a payload
	// identifier, which makes href building ambiguous.
	IssueDuplicatePayload IssueType = "DUPLICATE_PAYLOAD"
)

// Issue is one advisory finding about a built route tree. Issues never
// change resolution behavior; they exist so tooling can warn early.
type Issue struct {
	// Type is the issue category.
	Type IssueType

	// Message is the human-readable description.
	Message string

	// Path is the full pattern path of the affected route.
	Path string

	// Details carries issue-specific context.
	Details string
}

func (i Issue) String() string {
	if i.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", i.Type, i.Message, i.Details)
	}
	return fmt.Sprintf("%s: %s", i.Type, i.Message)
}

// MultiIssueError wraps validation issues into an error for strict mode.
type MultiIssueError struct {
	Issues []Issue
}

func (e *MultiIssueError) Error() string {
	if len(e.Issues) == 0 {
		return "no validation issues"
	}
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d route validation issues:\n", len(e.Issues)))
	for i, issue := range e.Issues {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, issue.String()))
	}
	return sb.String()
}

// Validate inspects a built tree and reports advisory issues: duplicate
// sibling patterns, routes resolution can never reach, and payload
// identifiers that appear more than once. A nil or empty result means the
// tree is clean.
func Validate(root *RouteNode) []Issue {
	if root == nil {
		return nil
	}
	v := &treeValidator{payloads: make(map[string]string)}
	v.walk(root, nil)
	return v.issues
}

// ValidateStrict is Validate for callers that want issues as a hard error.
func ValidateStrict(root *RouteNode) error {
	issues := Validate(root)
	if len(issues) == 0 {
		return nil
	}
	return &MultiIssueError{Issues: issues}
}

type treeValidator struct {
	issues []Issue

	// payloads maps payload identifier to the first path that used it.
	payloads map[string]string
}

func (v *treeValidator) walk(n *RouteNode, trail []pattern.Pattern) {
	path := joinTrail(trail)

	if n.payload != "" {
		if first, ok := v.payloads[n.payload]; ok {
			v.issues = append(v.issues, Issue{
				Type:    IssueDuplicatePayload,
				Message: fmt.Sprintf("payload %q declared more than once", n.payload),
				Path:    path,
				Details: fmt.Sprintf("first declared at %s", first),
			})
		} else {
			v.payloads[n.payload] = path
		}
	}

	v.checkSiblings(n, path)

	if n.pat.HasWildcard() {
		for _, c := range n.children {
			if !c.index {
				v.issues = append(v.issues, Issue{
					Type:    IssueUnreachableRoute,
					Message: fmt.Sprintf("route %q under wildcard %q can never match", c.pat.Raw, n.pat.Raw),
					Path:    path,
				})
			}
		}
	}

	for _, c := range n.children {
		next := trail
		if !c.pat.IsEmpty() {
			next = append(append([]pattern.Pattern(nil), trail...), c.pat)
		}
		v.walk(c, next)
	}
}

// checkSiblings flags duplicate patterns and shadowed wildcards among the
// direct children of n.
func (v *treeValidator) checkSiblings(n *RouteNode, path string) {
	seen := make(map[string]bool)
	wildcardSeen := false

	for _, c := range n.children {
		if c.index || c.pat.IsEmpty() {
			continue
		}

		canonical := c.pat.String()
		if seen[canonical] {
			v.issues = append(v.issues, Issue{
				Type:    IssueDuplicateRoute,
				Message: fmt.Sprintf("duplicate sibling pattern %q", canonical),
				Path:    path,
			})
		}
		seen[canonical] = true

		if c.pat.Segments[0].Kind == pattern.KindWildcard {
			if wildcardSeen {
				v.issues = append(v.issues, Issue{
					Type:    IssueUnreachableRoute,
					Message: fmt.Sprintf("wildcard %q is shadowed by an earlier wildcard sibling", c.pat.Raw),
					Path:    path,
				})
			}
			wildcardSeen = true
		}
	}
}

// =============================================================================
// Route Specificity
// =============================================================================

// Specificity returns a numeric score for a pattern. Higher scores mean
// more specific routes. Literal segments beat required parameters, which
// beat optional parameters; wildcard patterns always score zero. The score
// orders diagnostic output only and has no effect on resolution.
func Specificity(p pattern.Pattern) int {
	if p.HasWildcard() {
		return 0
	}

	score := len(p.Segments) * 100
	for _, seg := range p.Segments {
		switch seg.Kind {
		case pattern.KindLiteral:
			score += 50
		case pattern.KindParam:
			score += 10
		case pattern.KindOptionalParam:
			score += 5
		}
	}
	return score
}

// FormatIssue formats a validation issue for terminal display:
//
//	WARN: duplicate sibling pattern "/users/:id"
//	  at /users
//	  Details: first declared at /users
func FormatIssue(i Issue) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("WARN: %s\n", i.Message))
	if i.Path != "" {
		sb.WriteString(fmt.Sprintf("  at %s\n", i.Path))
	}
	if i.Details != "" {
		sb.WriteString(fmt.Sprintf("  Details: %s\n", i.Details))
	}

	return sb.String()
}
