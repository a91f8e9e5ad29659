package wayfind

import (
	"errors"
	"log/slog"

	"github.com/callmeskyy111/wayfind/pkg/manifest"
	"github.com/callmeskyy111/wayfind/pkg/nav"
	"github.com/callmeskyy111/wayfind/pkg/routepath"
	"github.com/callmeskyy111/wayfind/pkg/router"
)

// App ties a route table and a navigation session together. It resolves
// paths against the compiled tree and drives the session with
// canonicalized locations, so history never contains a path spelling
// the table would rewrite.
//
// Create an App with wayfind.New():
//
//	app, err := wayfind.New(wayfind.WithManifest("routes.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	app.Navigate("/users/42")
type App struct {
	root    *router.RouteNode
	session *nav.Session
	logger  *slog.Logger
}

type appOptions struct {
	manifestPath string
	decls        []router.Decl
	logger       *slog.Logger
	strict       bool
}

// Option configures New.
type Option func(*appOptions)

// WithManifest loads the route table from a manifest file. The format
// follows the file extension.
func WithManifest(path string) Option {
	return func(o *appOptions) { o.manifestPath = path }
}

// WithDecls builds the route table from in-code declarations.
func WithDecls(decls ...Decl) Option {
	return func(o *appOptions) { o.decls = decls }
}

// WithLogger sets the logger for the app and its session. Nil loggers
// are ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(o *appOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrictValidation turns route table validation issues into New
// errors instead of accepting the table as built.
func WithStrictValidation() Option {
	return func(o *appOptions) { o.strict = true }
}

// New builds an App from a manifest file or in-code declarations. The
// session starts at "/".
func New(opts ...Option) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.manifestPath != "" && o.decls != nil {
		return nil, errors.New("wayfind: WithManifest and WithDecls are mutually exclusive")
	}

	decls := o.decls
	if o.manifestPath != "" {
		m, err := manifest.Load(o.manifestPath)
		if err != nil {
			return nil, err
		}
		decls = m.Decls()
	}
	if len(decls) == 0 {
		return nil, errors.New("wayfind: no routes: pass WithManifest or WithDecls")
	}

	root, err := router.BuildTree(decls)
	if err != nil {
		return nil, err
	}

	if o.strict {
		if issues := router.Validate(root); len(issues) > 0 {
			return nil, &router.MultiIssueError{Issues: issues}
		}
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		root:    root,
		session: nav.NewSession(nav.Location{Path: "/"}, nav.WithLogger(logger)),
		logger:  logger,
	}, nil
}

// =============================================================================
// Resolution
// =============================================================================

// Resolve canonicalizes a raw path and matches it against the route
// table. An unmatched path is not an error; check MatchResult.Matched.
func (a *App) Resolve(path string) (MatchResult, error) {
	m, _, err := router.ResolveCanonical(a.root, path)
	return m, err
}

// =============================================================================
// Navigation
// =============================================================================

type navigateOptions struct {
	replace bool
	state   any
}

// NavigateOption configures Navigate.
type NavigateOption func(*navigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *navigateOptions) { o.replace = true }
}

// WithState attaches an opaque value to the new history entry.
func WithState(state any) NavigateOption {
	return func(o *navigateOptions) { o.state = state }
}

// Navigate canonicalizes the path and commits it to the session. A
// clean path pushes a new entry; when canonicalization rewrites the
// path, the navigation is treated as an address correction and
// replaces the current entry instead, so the mistyped spelling never
// costs a history slot.
func (a *App) Navigate(path string, opts ...NavigateOption) error {
	var o navigateOptions
	for _, opt := range opts {
		opt(&o)
	}

	res, err := routepath.Canonicalize(path)
	if err != nil {
		return err
	}

	loc := nav.Location{Path: res.Path, Query: res.Query, State: o.state}
	if o.replace || res.Changed {
		a.session.Replace(loc)
	} else {
		a.session.Push(loc)
	}
	return nil
}

// Back moves the session one entry back. At the oldest entry it is a
// no-op.
func (a *App) Back() {
	a.session.Back()
}

// Forward moves the session one entry forward. At the newest entry it
// is a no-op.
func (a *App) Forward() {
	a.session.Forward()
}

// Go moves the session by delta entries. An out-of-range delta moves
// nothing.
func (a *App) Go(delta int) {
	a.session.Go(delta)
}

// Subscribe registers a listener for session changes and returns its
// unsubscribe function.
func (a *App) Subscribe(fn Listener) func() {
	return a.session.Subscribe(fn)
}

// Current returns the session's current location.
func (a *App) Current() Location {
	return a.session.Current()
}

// =============================================================================
// Component Access
// =============================================================================

// Tree returns the compiled route tree for direct use with the router
// package. Most apps won't need this.
func (a *App) Tree() *RouteNode {
	return a.root
}

// Session returns the underlying navigation session. Most apps won't
// need this.
func (a *App) Session() *Session {
	return a.session
}

// Href builds the path for a named route from its parameters.
func (a *App) Href(payload string, params map[string]string) (string, error) {
	return router.Href(a.root, payload, params)
}
