// Package metrics provides Prometheus metrics for the aura service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var (
	aurasGenerated = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "gitaura",
		Name:      "auras_generated_total",
		Help:      "Total number of auras generated.",
	})

	generationDuration = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "gitaura",
		Name:      "generation_duration_seconds",
		Help:      "End-to-end aura generation latency (extract, simulate, render).",
		Buckets:   prometheus.DefBuckets,
	})

	fetchErrors = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "gitaura",
		Name:      "fetch_errors_total",
		Help:      "GitHub stats fetch failures.",
	})

	renderErrors = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "gitaura",
		Name:      "render_errors_total",
		Help:      "Pipeline failures after a successful fetch.",
	})

	httpRequests = promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: "gitaura",
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	httpRequestDuration = promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gitaura",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"endpoint", "method", "status"})
)

// GetRegistry exposes the custom registry for promhttp.
func GetRegistry() *prometheus.Registry {
	return registry
}

// RecordGeneration records one successful aura generation and its latency.
func RecordGeneration(seconds float64) {
	aurasGenerated.Inc()
	generationDuration.Observe(seconds)
}

// RecordFetchError counts a failed GitHub fetch.
func RecordFetchError() {
	fetchErrors.Inc()
}

// RecordRenderError counts a pipeline failure.
func RecordRenderError() {
	renderErrors.Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
