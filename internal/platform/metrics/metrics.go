// Package metrics exposes Prometheus instrumentation for the HTTP layer and
// the analysis engines.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "attune"

// Engine labels
const (
	EnginePatterns  = "patterns"
	EngineRecommend = "recommend"
)

// unmatchedRoute labels requests that did not match any route.
const unmatchedRoute = "unmatched"

// Metrics holds the collectors registered by New.
//
// Metrics:
//   - attune_http_requests_total{method,route,status}
//   - attune_http_request_duration_seconds{method,route}
//   - attune_engine_duration_seconds{engine}
//   - attune_engine_results{engine}
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	EngineDuration  *prometheus.HistogramVec
	EngineResults   *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the collectors with reg. A nil reg uses a fresh registry,
// which keeps repeated construction in tests from colliding.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		EngineDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "engine_duration_seconds",
				Help:      "Duration of pattern analysis and recommendation runs in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~200ms
			},
			[]string{"engine"},
		),
		EngineResults: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "engine_results",
				Help:      "Number of events analyzed or recommendations returned per run",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"engine"},
		),
		gatherer: reg,
	}
}

// Handler serves the registered metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveEngine records one engine run that started at start and produced
// n results. It is safe to call on a nil *Metrics.
func (m *Metrics) ObserveEngine(engine string, start time.Time, n int) {
	if m == nil {
		return
	}
	m.EngineDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	m.EngineResults.WithLabelValues(engine).Observe(float64(n))
}

// Middleware counts requests and their latency, labelled by the matched chi
// route pattern rather than the raw path.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}
