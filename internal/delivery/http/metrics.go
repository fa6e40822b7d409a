package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/furnifind/backend/internal/usecase"
)

// Metrics holds the service's Prometheus collectors. It also observes
// analysis lifecycles for the session service.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	analysesInFlight prometheus.Gauge
}

var _ usecase.AnalysisObserver = (*Metrics)(nil)

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "furnifind_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "furnifind_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		analysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "furnifind_analyses_total",
				Help: "Image analyses by outcome",
			},
			[]string{"outcome"},
		),
		analysisDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "furnifind_analysis_duration_seconds",
				Help:    "Time from upload to terminal analysis event",
				Buckets: []float64{0.1, 0.5, 1, 2, 3, 5, 10},
			},
		),
		analysesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "furnifind_analyses_in_flight",
				Help: "Analyses currently running",
			},
		),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.analysesTotal,
		m.analysisDuration,
		m.analysesInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Middleware records request count and latency per route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AnalysisStarted implements usecase.AnalysisObserver
func (m *Metrics) AnalysisStarted() {
	m.analysesInFlight.Inc()
}

// AnalysisFinished implements usecase.AnalysisObserver
func (m *Metrics) AnalysisFinished(outcome string, elapsed time.Duration) {
	m.analysesTotal.WithLabelValues(outcome).Inc()
	if outcome == usecase.OutcomeRejected {
		return
	}
	m.analysesInFlight.Dec()
	m.analysisDuration.Observe(elapsed.Seconds())
}
