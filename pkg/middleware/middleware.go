package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Middleware is a standard net/http middleware. Every constructor in this
// package returns one, so they can be mounted directly with chi's Use or
// chained by hand around any http.Handler.
type Middleware func(http.Handler) http.Handler

// routePattern returns the low-cardinality route label for a request.
// When the handler is mounted on a chi router the matched route pattern
// (for example "/snapshots/{id}") is used; otherwise the raw URL path is
// the fallback. Must be called after the inner handler has run, because
// chi fills the pattern in during routing.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	if r.URL.Path == "" {
		return "/"
	}
	return r.URL.Path
}
