package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	metricsRequestsTotal  *prometheus.CounterVec
	metricsLatencySeconds *prometheus.HistogramVec
	metricsErrorsTotal    *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used for API observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		metricsRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rela_api_requests_total",
			Help: "Total number of metrics API requests served.",
		}, []string{"method", "route", "status"})

		metricsLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rela_api_latency_seconds",
			Help:    "Latency distribution for metrics API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		metricsErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rela_api_errors_total",
			Help: "Total number of error responses returned by metrics endpoints.",
		}, []string{"method", "route", "status"})

		prometheus.MustRegister(metricsRequestsTotal, metricsLatencySeconds, metricsErrorsTotal)
	})
}

// APIRequests exposes the counter for metrics API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return metricsRequestsTotal
}

// APILatency exposes the latency histogram for metrics API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return metricsLatencySeconds
}

// APIErrors exposes the counter for metrics API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return metricsErrorsTotal
}
