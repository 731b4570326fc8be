// Package metrics exposes dashboard activity as Prometheus metrics
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Chart outcomes
const (
	OutcomeRendered = "rendered"
	OutcomeFailed   = "failed"
)

// PrometheusRecorder records chart, tab and request metrics on its own registry
type PrometheusRecorder struct {
	registry *prometheus.Registry

	chartsTotal         *prometheus.CounterVec
	tabDurationSeconds  *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	httpDurationSeconds *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a recorder with Go runtime and process
// collectors registered
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		chartsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_charts_total",
			Help: "Charts produced per tab, chart and outcome.",
		}, []string{"tab", "chart", "outcome"}),
		tabDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_tab_render_duration_seconds",
			Help:    "Time to derive and render every chart of a tab.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"tab"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(r.chartsTotal)
	registry.MustRegister(r.tabDurationSeconds)
	registry.MustRegister(r.httpRequestsTotal)
	registry.MustRegister(r.httpDurationSeconds)

	return r
}

// Handler serves the registry in the exposition format
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordChart counts one chart of a tab
func (r *PrometheusRecorder) RecordChart(tab, chart string, err error) {
	outcome := OutcomeRendered
	if err != nil {
		outcome = OutcomeFailed
	}
	r.chartsTotal.WithLabelValues(tab, chart, outcome).Inc()
}

// RecordTab observes how long a full tab took
func (r *PrometheusRecorder) RecordTab(tab string, d time.Duration) {
	r.tabDurationSeconds.WithLabelValues(tab).Observe(d.Seconds())
}

// RecordRequest counts one served HTTP request
func (r *PrometheusRecorder) RecordRequest(route string, code int, d time.Duration) {
	r.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
	r.httpDurationSeconds.WithLabelValues(route).Observe(d.Seconds())
}
