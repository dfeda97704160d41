// Package ops holds the demo host's own observability: request counters
// and the /metrics endpoint. The access-log middleware stays metrics-free;
// anything Prometheus-shaped is the host's business.
package ops

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/slogware/accesslog"
)

// Metrics holds the host's Prometheus metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers the host metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of requests served.",
			},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "Request duration in seconds.",
				// Buckets: 5ms, 10ms, 25ms, 50ms, 100ms, 250ms, 500ms, 1s, 2.5s, 5s, 10s
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method"},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration)
	return m
}

// Middleware counts each request by method and final status. Labels stay
// low-cardinality: no paths.
func (m *Metrics) Middleware() accesslog.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := accesslog.NewResponseCapture(w)
			timer := prometheus.NewTimer(m.RequestDuration.WithLabelValues(r.Method))

			next.ServeHTTP(rc, r)

			timer.ObserveDuration()
			m.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rc.StatusCode)).Inc()
		})
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
