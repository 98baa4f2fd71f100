// Package metrics exposes Prometheus collectors for the check-in pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "moodline"

// Outcome label values.
const (
	OutcomeOK        = "ok"
	OutcomeFallback  = "fallback"
	OutcomeError     = "error"
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
	OutcomeSkipped   = "skipped"
)

// Metrics holds every collector on its own registry. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	messagesReceived   *prometheus.CounterVec
	extractions        *prometheus.CounterVec
	extractionDuration prometheus.Histogram
	entriesPersisted   *prometheus.CounterVec
	confirmations      *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		messagesReceived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "webhook",
				Name:      "messages_received_total",
				Help:      "Inbound check-ins by channel.",
			},
			[]string{"channel"},
		),
		extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "extract",
				Name:      "attempts_total",
				Help:      "Extraction attempts by outcome (ok or fallback).",
			},
			[]string{"outcome"},
		),
		extractionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "extract",
				Name:      "duration_seconds",
				Help:      "Extraction call latency.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 30},
			},
		),
		entriesPersisted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "entries_total",
				Help:      "Entry inserts by outcome.",
			},
			[]string{"outcome"},
		),
		confirmations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "dispatch",
				Name:      "confirmations_total",
				Help:      "Confirmation replies by outcome.",
			},
			[]string{"outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route pattern and status code.",
			},
			[]string{"route", "code"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route pattern.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// MessageReceived counts an inbound check-in.
func (m *Metrics) MessageReceived(channel string) {
	if m == nil {
		return
	}
	m.messagesReceived.WithLabelValues(channel).Inc()
}

// Extraction records one extraction attempt.
func (m *Metrics) Extraction(outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(outcome).Inc()
	m.extractionDuration.Observe(took.Seconds())
}

// EntryPersisted records one insert attempt.
func (m *Metrics) EntryPersisted(outcome string) {
	if m == nil {
		return
	}
	m.entriesPersisted.WithLabelValues(outcome).Inc()
}

// Confirmation records one confirmation dispatch.
func (m *Metrics) Confirmation(outcome string) {
	if m == nil {
		return
	}
	m.confirmations.WithLabelValues(outcome).Inc()
}

// HTTPRequest records one served request.
func (m *Metrics) HTTPRequest(route, code string, took time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
	m.httpDuration.WithLabelValues(route).Observe(took.Seconds())
}
