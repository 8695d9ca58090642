package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// HTTPClientPrometheusMetrics observes calls to the account/transaction directory.
type HTTPClientPrometheusMetrics struct {
	requestDuration *prometheus.HistogramVec
	transportErrors *prometheus.CounterVec
}

func newHTTPClientPrometheusMetrics(reg prometheus.Registerer) *HTTPClientPrometheusMetrics {
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "external_api_request_duration_seconds",
			Help:    "Duration of external API requests in seconds.",
			Buckets: []float64{0.001, 0.010, 0.050, 0.100, 0.200, 0.500, 1, 2, 5, 10},
		},
		[]string{"service", "method", "endpoint", "response_code"},
	)
	transportErrors := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_api_transport_errors_total",
			Help: "External API requests that failed before a response was received.",
		},
		[]string{"service", "method", "endpoint"},
	)

	reg.MustRegister(requestDuration, transportErrors)

	return &HTTPClientPrometheusMetrics{
		requestDuration: requestDuration,
		transportErrors: transportErrors,
	}
}

// Record observes a completed request; endpoint must be the route template, not the raw URL.
func (m *HTTPClientPrometheusMetrics) Record(duration time.Duration, service, method, endpoint string, statusCode int) {
	m.requestDuration.WithLabelValues(service, method, endpoint, strconv.Itoa(statusCode)).
		Observe(duration.Seconds())
}

func (m *HTTPClientPrometheusMetrics) RecordTransportError(service, method, endpoint string) {
	m.transportErrors.WithLabelValues(service, method, endpoint).Inc()
}
