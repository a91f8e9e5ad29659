package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "wayfind",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the sync server.
type metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestsInFlight  prometheus.Gauge
	resolvesTotal     *prometheus.CounterVec
	canonicalRewrites prometheus.Counter
	navigationsTotal  *prometheus.CounterVec
	wsClients         prometheus.Gauge
	wsErrors          *prometheus.CounterVec
	historyEntries    prometheus.Histogram
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests handled by the sync server",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "method", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route", "method"}),

		requestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_in_flight",
			Help:        "Number of HTTP requests currently being served",
			ConstLabels: config.ConstLabels,
		}),

		resolvesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "resolves_total",
			Help:        "Total number of route resolutions by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"outcome"}),

		canonicalRewrites: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "canonical_rewrites_total",
			Help:        "Total number of resolutions whose canonical path differed from the raw input",
			ConstLabels: config.ConstLabels,
		}),

		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of session navigations by action",
			ConstLabels: config.ConstLabels,
		}, []string{"action"}),

		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_clients",
			Help:        "Number of connected WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		historyEntries: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "history_entries",
			Help:        "History length observed after each navigation",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 5, 10, 20, 50, 100},
		}),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for every
// request handled by the sync server.
//
// Metrics collected:
//   - wayfind_http_requests_total: Counter of requests by route, method, and status code
//   - wayfind_http_request_duration_seconds: Histogram of request duration
//   - wayfind_http_requests_in_flight: Gauge of concurrently served requests
//   - wayfind_resolves_total: Counter of route resolutions (when RecordResolve is called)
//   - wayfind_canonical_rewrites_total: Counter of canonical path rewrites
//   - wayfind_navigations_total: Counter of session navigations by action
//   - wayfind_websocket_clients: Gauge of connected WebSocket clients
//   - wayfind_websocket_errors_total: Counter of WebSocket errors
//   - wayfind_history_entries: Histogram of history length per navigation
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(
//	    middleware.WithNamespace("myapp"),
//	))
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Initialize metrics once
	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.requestsInFlight.Inc()
			defer m.requestsInFlight.Dec()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			// Time the request
			start := time.Now()
			next.ServeHTTP(ww, r)
			duration := time.Since(start).Seconds()

			// The route pattern is only known after routing has run.
			route := routePattern(r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.requestDuration.WithLabelValues(route, r.Method).Observe(duration)
			m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		})
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordResolve records a route resolution outcome.
// Call this from your server code when a path is resolved against the tree.
func RecordResolve(matched bool) {
	if globalMetrics != nil {
		outcome := "matched"
		if !matched {
			outcome = "unmatched"
		}
		globalMetrics.resolvesTotal.WithLabelValues(outcome).Inc()
	}
}

// RecordCanonicalRewrite records a resolution whose canonical path differed
// from the raw input.
func RecordCanonicalRewrite() {
	if globalMetrics != nil {
		globalMetrics.canonicalRewrites.Inc()
	}
}

// RecordNavigation records a session navigation by action name
// (push, replace, or pop).
func RecordNavigation(action string) {
	if globalMetrics != nil {
		globalMetrics.navigationsTotal.WithLabelValues(action).Inc()
	}
}

// RecordHistoryLength records the history length observed after a navigation.
func RecordHistoryLength(entries int) {
	if globalMetrics != nil {
		globalMetrics.historyEntries.Observe(float64(entries))
	}
}

// RecordClientConnect records a new WebSocket client connection.
func RecordClientConnect() {
	if globalMetrics != nil {
		globalMetrics.wsClients.Inc()
	}
}

// RecordClientDisconnect records a WebSocket client disconnect.
func RecordClientDisconnect() {
	if globalMetrics != nil {
		globalMetrics.wsClients.Dec()
	}
}

// RecordWebSocketError records a WebSocket error.
func RecordWebSocketError(errorType string) {
	if globalMetrics != nil {
		globalMetrics.wsErrors.WithLabelValues(errorType).Inc()
	}
}

// =============================================================================
// Metrics Collector
// =============================================================================

// Collector exposes the metrics for use in custom registrations.
// This allows collecting sync server metrics alongside other application
// metrics.
type Collector struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	requestsInFlight  prometheus.Gauge
	resolvesTotal     *prometheus.CounterVec
	canonicalRewrites prometheus.Counter
	navigationsTotal  *prometheus.CounterVec
	wsClients         prometheus.Gauge
	wsErrors          *prometheus.CounterVec
	historyEntries    prometheus.Histogram
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		requestsTotal:     globalMetrics.requestsTotal,
		requestDuration:   globalMetrics.requestDuration,
		requestsInFlight:  globalMetrics.requestsInFlight,
		resolvesTotal:     globalMetrics.resolvesTotal,
		canonicalRewrites: globalMetrics.canonicalRewrites,
		navigationsTotal:  globalMetrics.navigationsTotal,
		wsClients:         globalMetrics.wsClients,
		wsErrors:          globalMetrics.wsErrors,
		historyEntries:    globalMetrics.historyEntries,
	}
}
