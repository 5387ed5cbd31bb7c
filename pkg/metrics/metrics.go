package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
	RendersTotal        *prometheus.CounterVec
	CountdownsStarted   prometheus.Counter
}

// New registers the application metrics on a fresh registry that also carries
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		AnalysesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_analyses_total",
				Help: "Total number of analysis attempts.",
			},
			[]string{"status", "error_type"}, // status: success, failure
		),
		AnalysisDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seo_analysis_duration_seconds",
				Help:    "Duration of crawl plus AI analysis.",
				Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
			},
			[]string{"stage"}, // crawl, analyst
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_report_cache_lookups_total",
				Help: "Report cache lookups by result.",
			},
			[]string{"result"}, // hit, miss, error
		),
		RendersTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_report_renders_total",
				Help: "Report view renders by outcome.",
			},
			[]string{"outcome"}, // content, error
		),
		CountdownsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "seo_error_countdowns_started_total",
				Help: "Error banner countdowns started.",
			},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) IncAnalysis(status, errorType string) {
	m.AnalysesTotal.WithLabelValues(status, errorType).Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncRender(outcome string) {
	m.RendersTotal.WithLabelValues(outcome).Inc()
}
