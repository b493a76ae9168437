package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for outbound API requests
type Metrics struct {
	serviceName string

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
}

// New registers and returns the metrics collectors for the given service name
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,
		requestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_client_requests_total",
				Help: "Total number of outbound API requests",
			},
			[]string{"service", "method", "endpoint", "status"},
		),
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "api_client_request_duration_seconds",
				Help:    "Outbound API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"service", "method", "endpoint"},
		),
		requestErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "api_client_request_errors_total",
				Help: "Total number of outbound API transport errors",
			},
			[]string{"service", "method", "endpoint"},
		),
	}
}

// ObserveRequest records one completed request
func (m *Metrics) ObserveRequest(method, endpoint, status string, seconds float64) {
	m.requestsTotal.WithLabelValues(m.serviceName, method, endpoint, status).Inc()
	m.requestDuration.WithLabelValues(m.serviceName, method, endpoint).Observe(seconds)
}

// ObserveError records one failed (transport-level) request
func (m *Metrics) ObserveError(method, endpoint string) {
	m.requestErrors.WithLabelValues(m.serviceName, method, endpoint).Inc()
}
