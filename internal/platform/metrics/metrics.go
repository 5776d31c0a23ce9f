// Package metrics expone instrumentación Prometheus del servicio.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration mide la duración de requests HTTP.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timeline_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal cuenta requests HTTP.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timeline_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// BuildDuration mide la agregación completa del timeline.
	BuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "timeline_build_duration_seconds",
			Help:    "Full timeline aggregation duration",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)

	// SourceFailures cuenta fetchers de origen que fallaron
	// (no fatales: la agregación sigue sin esa fuente).
	SourceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timeline_source_failures_total",
			Help: "Source fetch failures tolerated during aggregation",
		},
		[]string{"source"},
	)

	// EnrichmentFailures cuenta lookups batch de owners que fallaron.
	EnrichmentFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "timeline_enrichment_failures_total",
			Help: "Owner directory batch lookup failures",
		},
	)

	// EventsReturned observa cuántos eventos devuelve cada agregación.
	EventsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "timeline_events_returned",
			Help:    "Events returned per aggregation",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000, 2000},
		},
	)
)

// RecordRequest registra las métricas de un request HTTP.
func RecordRequest(method, path, status string, seconds float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}
