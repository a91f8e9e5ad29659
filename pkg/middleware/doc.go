// Package middleware provides net/http middleware for the sync server.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry distributed tracing middleware
//   - Request-ID and slog request-logging middleware
//
// Every constructor returns a plain func(http.Handler) http.Handler, so
// the middleware mounts directly on a chi router:
//
//	r := chi.NewRouter()
//	r.Use(middleware.RequestID)
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.Prometheus())
//	r.Use(middleware.OpenTelemetry())
//
// # Prometheus Metrics
//
// The Prometheus middleware collects request metrics labeled by the chi
// route pattern, keeping label cardinality bounded:
//   - wayfind_http_requests_total: Requests by route, method, and status code
//   - wayfind_http_request_duration_seconds: Request duration histogram
//   - wayfind_http_requests_in_flight: Concurrently served requests
//
// Domain counters (resolutions, canonical rewrites, navigations, WebSocket
// clients) are exposed through Record functions the server calls directly.
// Expose everything on the usual endpoint:
//
//	r.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry Middleware
//
// The OpenTelemetry middleware starts a span per request and injects it
// into the request context, so database drivers and HTTP clients inherit
// the trace:
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	)
//
// # Request IDs
//
// RequestID assigns each request a UUID (reusing an incoming X-Request-ID
// header when present). The ID is echoed on the response, attached to
// traces, and included in request log lines, which makes it the join key
// across all three signals.
package middleware
