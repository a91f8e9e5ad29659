package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func resetGlobalMetricsForTest() {
	globalMetricsMu.Lock()
	globalMetrics = nil
	globalMetricsMu.Unlock()
}

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func metricGaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	if m.Gauge == nil {
		t.Fatal("expected gauge metric to have Gauge field")
	}
	return m.GetGauge().GetValue()
}

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusMiddleware_RecordsRequests(t *testing.T) {
	t.Run("success labels route, method, and code", func(t *testing.T) {
		resetGlobalMetricsForTest()
		reg := prometheus.NewRegistry()

		mw := Prometheus(WithRegistry(reg))
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/resolve", nil))

		c := GetMetrics()
		if c == nil {
			t.Fatal("expected GetMetrics to return collector after initialization")
		}
		if got := metricCounterValue(t, c.requestsTotal.WithLabelValues("/resolve", "GET", "200")); got != 1 {
			t.Fatalf("http_requests_total(/resolve,GET,200)=%v, want 1", got)
		}
		if got := metricHistogramCount(t, c.requestDuration.WithLabelValues("/resolve", "GET")); got == 0 {
			t.Fatal("expected http_request_duration_seconds histogram to have sample count > 0")
		}
	})

	t.Run("error status is labeled", func(t *testing.T) {
		resetGlobalMetricsForTest()
		reg := prometheus.NewRegistry()

		mw := Prometheus(WithRegistry(reg))
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/resolve", nil))

		c := GetMetrics()
		if c == nil {
			t.Fatal("expected GetMetrics to return collector after initialization")
		}
		if got := metricCounterValue(t, c.requestsTotal.WithLabelValues("/resolve", "GET", "500")); got != 1 {
			t.Fatalf("http_requests_total(/resolve,GET,500)=%v, want 1", got)
		}
	})

	t.Run("handler that never writes counts as 200", func(t *testing.T) {
		resetGlobalMetricsForTest()
		reg := prometheus.NewRegistry()

		mw := Prometheus(WithRegistry(reg))
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

		c := GetMetrics()
		if c == nil {
			t.Fatal("expected GetMetrics to return collector after initialization")
		}
		if got := metricCounterValue(t, c.requestsTotal.WithLabelValues("/healthz", "GET", "200")); got != 1 {
			t.Fatalf("http_requests_total(/healthz,GET,200)=%v, want 1", got)
		}
	})
}

func TestPrometheusMiddleware_UsesChiRoutePattern(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	r := chi.NewRouter()
	r.Use(Prometheus(WithRegistry(reg)))
	r.Get("/snapshots/{id}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/snapshots/main", nil))

	c := GetMetrics()
	if c == nil {
		t.Fatal("expected GetMetrics to return collector after initialization")
	}
	if got := metricCounterValue(t, c.requestsTotal.WithLabelValues("/snapshots/{id}", "GET", "200")); got != 1 {
		t.Fatalf("http_requests_total(/snapshots/{id},GET,200)=%v, want 1", got)
	}
}

func TestPrometheusMiddleware_TracksInFlight(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	mw := Prometheus(WithRegistry(reg))
	c := GetMetrics()
	if c == nil {
		t.Fatal("expected GetMetrics to return collector after initialization")
	}

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := metricGaugeValue(t, c.requestsInFlight); got != 1 {
			t.Errorf("in-flight during request = %v, want 1", got)
		}
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/routes", nil))

	if got := metricGaugeValue(t, c.requestsInFlight); got != 0 {
		t.Errorf("in-flight after request = %v, want 0", got)
	}
}

func TestMetricsRecordFunctions_WithInitializedMetrics(t *testing.T) {
	resetGlobalMetricsForTest()
	reg := prometheus.NewRegistry()

	_ = Prometheus(WithRegistry(reg)) // initialize global metrics
	c := GetMetrics()
	if c == nil {
		t.Fatal("expected GetMetrics to return collector after initialization")
	}

	RecordResolve(true)
	RecordResolve(true)
	RecordResolve(false)
	RecordCanonicalRewrite()
	RecordNavigation("push")
	RecordNavigation("pop")
	RecordHistoryLength(4)
	RecordClientConnect()
	RecordClientConnect()
	RecordClientDisconnect()
	RecordWebSocketError("close")

	if got := metricCounterValue(t, c.resolvesTotal.WithLabelValues("matched")); got != 2 {
		t.Fatalf("resolves_total(matched)=%v, want 2", got)
	}
	if got := metricCounterValue(t, c.resolvesTotal.WithLabelValues("unmatched")); got != 1 {
		t.Fatalf("resolves_total(unmatched)=%v, want 1", got)
	}
	if got := metricCounterValue(t, c.canonicalRewrites); got != 1 {
		t.Fatalf("canonical_rewrites_total=%v, want 1", got)
	}
	if got := metricCounterValue(t, c.navigationsTotal.WithLabelValues("push")); got != 1 {
		t.Fatalf("navigations_total(push)=%v, want 1", got)
	}
	if got := metricCounterValue(t, c.navigationsTotal.WithLabelValues("pop")); got != 1 {
		t.Fatalf("navigations_total(pop)=%v, want 1", got)
	}
	if got := metricGaugeValue(t, c.wsClients); got != 1 {
		t.Fatalf("websocket_clients=%v, want 1 (two connects, one disconnect)", got)
	}
	if got := metricCounterValue(t, c.wsErrors.WithLabelValues("close")); got != 1 {
		t.Fatalf("websocket_errors_total(close)=%v, want 1", got)
	}
	if got := metricHistogramCount(t, c.historyEntries); got != 1 {
		t.Fatalf("history_entries sample count=%v, want 1", got)
	}
}
