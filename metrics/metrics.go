package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thanhminhmr/go-testerror/testerror"
)

// Registry holds all Prometheus metrics of the report service.
type Registry struct {
	*prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	reportsTotal   *prometheus.CounterVec
	framesTotal    *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

// NewRegistry creates a registry with the Go runtime collectors and the
// service metrics registered.
func NewRegistry() *Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: registry,
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		reportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "testerror_reports_total",
				Help: "Total number of error reports processed",
			},
			[]string{"transport", "status"},
		),
		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "testerror_frames_total",
				Help: "Total number of stack frames before and after abbreviation",
			},
			[]string{"stage"},
		),
		renderDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "testerror_render_duration_seconds",
				Help:    "Time spent abbreviating and rendering a report",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
			},
		),
	}
	registry.MustRegister(
		r.httpRequestsTotal,
		r.httpRequestDuration,
		r.reportsTotal,
		r.framesTotal,
		r.renderDuration,
	)
	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordReport records a processed report. A failed report has no summary.
func (r *Registry) RecordReport(transport string, summary *testerror.Summary, duration time.Duration) {
	if summary == nil {
		r.reportsTotal.WithLabelValues(transport, "failed").Inc()
		return
	}
	r.reportsTotal.WithLabelValues(transport, "ok").Inc()
	r.framesTotal.WithLabelValues("before").Add(float64(summary.FramesBefore))
	r.framesTotal.WithLabelValues("after").Add(float64(summary.FramesAfter))
	r.renderDuration.Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{Registry: r.Registry})
}
