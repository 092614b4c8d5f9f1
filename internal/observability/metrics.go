package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce      sync.Once
	apiRequestsTotal  *prometheus.CounterVec
	apiLatencySeconds *prometheus.HistogramVec
	apiErrorsTotal    *prometheus.CounterVec
	apiInFlight       prometheus.Gauge
)

// RegisterMetrics initialises the Prometheus collectors used for API-call
// observability.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prolearn_api_requests_total",
			Help: "Total number of backend API requests issued.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prolearn_api_latency_seconds",
			Help:    "Latency distribution for backend API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prolearn_api_errors_total",
			Help: "Total number of failed backend API requests.",
		}, []string{"method", "route", "status"})

		apiInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "prolearn_api_in_flight",
			Help: "Number of backend API requests currently in flight.",
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, apiInFlight)
	})
}

// APIRequests exposes the counter for issued API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for failed API requests.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// APIInFlight exposes the in-flight request gauge.
func APIInFlight() prometheus.Gauge {
	RegisterMetrics()
	return apiInFlight
}
