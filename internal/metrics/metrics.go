// Package metrics defines the Prometheus collectors exported by the service
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipify_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PanicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipify_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)

	// Generation metrics
	GenerationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipify_generation_attempts_total",
			Help: "Generation attempts by outcome (accepted, malformed, rejected, model_error, upstream_error)",
		},
		[]string{"outcome"},
	)

	GenerationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipify_generation_results_total",
			Help: "Completed generation requests by result",
		},
		[]string{"result"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipify_generation_duration_seconds",
			Help:    "End-to-end latency of a diversity-gated generation",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"result"},
	)

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipify_upstream_errors_total",
			Help: "Classified model client failures",
		},
		[]string{"kind"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipify_response_cache_lookups_total",
			Help: "Model response cache lookups by result",
		},
		[]string{"result"},
	)
)
