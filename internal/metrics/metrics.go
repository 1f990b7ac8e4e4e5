// Package metrics exposes Prometheus instrumentation for the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the dashboard collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry          *prometheus.Registry
	readingsTotal     prometheus.Counter
	alertsRaised      *prometheus.CounterVec
	alertsSuppressed  prometheus.Counter
	logEntries        *prometheus.CounterVec
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New creates the collectors on a private registry. activeAlerts is sampled
// at scrape time for the biomon_alerts_active gauge and may be nil.
func New(activeAlerts func() float64) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readingsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biomon_readings_total",
			Help: "Total readings appended to the live series.",
		}),
		alertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biomon_alerts_raised_total",
			Help: "Critical alerts raised by biomarker.",
		}, []string{"kind"}),
		alertsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biomon_alerts_suppressed_total",
			Help: "Alerts not raised because an identical one was active.",
		}),
		logEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biomon_log_entries_total",
			Help: "Manual log entries by status.",
		}, []string{"status"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biomon_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "biomon_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.readingsTotal,
		m.alertsRaised,
		m.alertsSuppressed,
		m.logEntries,
		m.httpRequestsTotal,
		m.httpDuration,
	)
	if activeAlerts != nil {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "biomon_alerts_active",
			Help: "Alerts currently shown.",
		}, activeAlerts))
	}
	return m
}

func (m *Metrics) ReadingAppended() {
	if m == nil {
		return
	}
	m.readingsTotal.Inc()
}

func (m *Metrics) AlertRaised(kind string) {
	if m == nil {
		return
	}
	m.alertsRaised.WithLabelValues(kind).Inc()
}

func (m *Metrics) AlertSuppressed() {
	if m == nil {
		return
	}
	m.alertsSuppressed.Inc()
}

func (m *Metrics) LogEntry(status string) {
	if m == nil {
		return
	}
	m.logEntries.WithLabelValues(status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request count and latency for route.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the private registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
