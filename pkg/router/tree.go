package router

import (
	"fmt"

	"github.com/callmeskyy111/wayfind/pkg/pattern"
)

// RouteNode is a node in the route tree. Nodes are built once from
// declarations and never mutated afterwards; resolution only reads them.
type RouteNode struct {
	// pat is the compiled pattern. Empty for the synthetic root and for
	// index nodes.
	pat pattern.Pattern

	// index marks this node as its parent's default child.
	index bool

	// payload is the opaque render identifier from the declaration.
	payload string

	// children in declaration order. Order is the tie-breaker inside a
	// precedence class during resolution.
	children []*RouteNode
}

// TreeError describes an invalid route declaration tree.
type TreeError struct {
	// Path is the pattern text of the offending declaration, or the
	// parent's pattern when the problem is between siblings.
	Path string

	// Reason is the human-readable rejection reason.
	Reason string

	// Err is the underlying pattern error, if any.
	Err error
}

func (e *TreeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid route tree: %s", e.Reason)
	}
	return fmt.Sprintf("invalid route tree at %q: %s", e.Path, e.Reason)
}

func (e *TreeError) Unwrap() error {
	return e.Err
}

// BuildTree compiles nested route declarations into a tree rooted at a
// synthetic pattern-less node. The root is never an index node and carries
// no payload; resolution always starts there.
//
// BuildTree fails when two index declarations share a parent, when an
// index declaration carries a path or children, when a non-index child
// declares no path, or when a pattern does not compile.
func BuildTree(decls []Decl) (*RouteNode, error) {
	root := &RouteNode{}
	if err := attachChildren(root, decls); err != nil {
		return nil, err
	}
	return root, nil
}

// attachChildren builds and attaches child nodes for decls, enforcing the
// sibling-level invariants.
func attachChildren(parent *RouteNode, decls []Decl) error {
	indexSeen := false
	for _, d := range decls {
		child, err := buildNode(d)
		if err != nil {
			return err
		}
		if child.index {
			if indexSeen {
				return &TreeError{Path: parent.pat.Raw, Reason: "multiple index routes among the same siblings"}
			}
			indexSeen = true
		}
		parent.children = append(parent.children, child)
	}
	return nil
}

// buildNode compiles a single declaration and, recursively, its children.
func buildNode(d Decl) (*RouteNode, error) {
	if d.Index {
		if d.Path != "" && d.Path != "/" {
			return nil, &TreeError{Path: d.Path, Reason: "index route must not declare a path"}
		}
		if len(d.Children) > 0 {
			return nil, &TreeError{Path: d.Path, Reason: "index route must not declare children"}
		}
		return &RouteNode{index: true, payload: d.Payload}, nil
	}

	if d.Path == "" || d.Path == "/" {
		return nil, &TreeError{Path: d.Path, Reason: "non-index route must declare a path"}
	}

	pat, err := pattern.Compile(d.Path)
	if err != nil {
		return nil, &TreeError{Path: d.Path, Reason: "pattern does not compile", Err: err}
	}

	node := &RouteNode{pat: pat, payload: d.Payload}

	if err := attachChildren(node, d.Children); err != nil {
		return nil, err
	}
	return node, nil
}

// Pattern returns the node's compiled pattern. Root and index nodes have
// an empty pattern.
func (n *RouteNode) Pattern() pattern.Pattern {
	return n.pat
}

// IsIndex reports whether this node is its parent's default child.
func (n *RouteNode) IsIndex() bool {
	return n.index
}

// Payload returns the opaque render identifier, "" when none was declared.
func (n *RouteNode) Payload() string {
	return n.payload
}

// Children returns the node's children in declaration order. The returned
// slice is the tree's own; callers must not modify it.
func (n *RouteNode) Children() []*RouteNode {
	return n.children
}

// indexChild returns the node's index child, or nil.
func (n *RouteNode) indexChild() *RouteNode {
	for _, c := range n.children {
		if c.index {
			return c
		}
	}
	return nil
}

// Walk visits every node in the tree depth-first in declaration order,
// calling fn with the node and the patterns accumulated from the root.
// Walk stops early when fn returns false.
func (n *RouteNode) Walk(fn func(node *RouteNode, trail []pattern.Pattern) bool) {
	n.walk(nil, fn)
}

func (n *RouteNode) walk(trail []pattern.Pattern, fn func(*RouteNode, []pattern.Pattern) bool) bool {
	next := trail
	if !n.pat.IsEmpty() {
		next = append(append([]pattern.Pattern(nil), trail...), n.pat)
	}
	if !fn(n, next) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(next, fn) {
			return false
		}
	}
	return true
}
