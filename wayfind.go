// Package wayfind provides the public API for the wayfind router.
//
// This is the recommended import for most applications:
//
//	import "github.com/callmeskyy111/wayfind"
//
// Usage:
//
//	app, err := wayfind.New(wayfind.WithManifest("routes.yaml"))
//	m, err := app.Resolve("/users/42")
//	app.Navigate("/users/42?tab=posts")
//	unsubscribe := app.Subscribe(func(ev wayfind.Event) { ... })
package wayfind

import (
	"github.com/callmeskyy111/wayfind/pkg/nav"
	"github.com/callmeskyy111/wayfind/pkg/routepath"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

// =============================================================================
// Route table (re-export from pkg/router)
// =============================================================================

// Decl declares one route before compilation.
type Decl = router.Decl

// RouteNode is a compiled node in the route tree.
type RouteNode = router.RouteNode

// MatchResult is the outcome of resolving a path against the tree.
type MatchResult = router.MatchResult

// RouteInfo describes one resolvable route in a listing.
type RouteInfo = router.RouteInfo

// Issue is a route table validation finding.
type Issue = router.Issue

// BuildTree compiles route declarations into a route tree.
var BuildTree = router.BuildTree

// Resolve matches an already-canonical path against the tree.
var Resolve = router.Resolve

// ResolveCanonical canonicalizes a raw path and resolves the result.
var ResolveCanonical = router.ResolveCanonical

// Href builds the path for a named route from its parameters.
var Href = router.Href

// HrefQuery builds the path for a named route with a query string.
var HrefQuery = router.HrefQuery

// Routes lists every resolvable route in the tree.
var Routes = router.Routes

// SortBySpecificity orders a route listing most-specific first.
var SortBySpecificity = router.SortBySpecificity

// Validate reports structural issues in a route tree.
var Validate = router.Validate

// =============================================================================
// Canonicalization (re-export from pkg/routepath)
// =============================================================================

// CanonicalResult is the outcome of canonicalizing a raw path.
type CanonicalResult = routepath.Result

// Canonicalize normalizes a raw path and query string.
var Canonicalize = routepath.Canonicalize

// =============================================================================
// Navigation session (re-export from pkg/nav)
// =============================================================================

// Location is one history entry.
type Location = nav.Location

// Event carries one committed session change.
type Event = nav.Event

// Listener receives session events.
type Listener = nav.Listener

// Action is the operation that produced a session event.
type Action = nav.Action

// Session event actions.
const (
	ActionPush    = nav.ActionPush
	ActionReplace = nav.ActionReplace
	ActionPop     = nav.ActionPop
)

// Session is an ordered navigation history with a movable cursor.
type Session = nav.Session

// NewSession builds a session seeded with an initial location.
var NewSession = nav.NewSession
