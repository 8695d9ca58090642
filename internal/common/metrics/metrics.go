package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

type Metrics interface {
	RegisterRedis(client *redis.Client, serviceName, namespace string) error
	PrometheusRegisterer() prometheus.Registerer
	GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics
	GetTransferPrometheus() *TransferPrometheusMetrics
}

type metrics struct {
	reg               prometheus.Registerer
	httpClientMetrics *HTTPClientPrometheusMetrics
	transferMetrics   *TransferPrometheusMetrics
}

// New registers every collector on reg, falling back to the prometheus default registerer.
func New(reg prometheus.Registerer) Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &metrics{
		reg:               reg,
		httpClientMetrics: newHTTPClientPrometheusMetrics(reg),
		transferMetrics:   newTransferPrometheusMetrics(reg),
	}
}

func (m *metrics) RegisterRedis(client *redis.Client, serviceName, namespace string) error {
	return m.reg.Register(redisprometheus.NewCollector(BuildFQName(serviceName, namespace), "redis", client))
}

func (m *metrics) PrometheusRegisterer() prometheus.Registerer {
	return m.reg
}

func (m *metrics) GetHTTPClientPrometheus() *HTTPClientPrometheusMetrics {
	return m.httpClientMetrics
}

func (m *metrics) GetTransferPrometheus() *TransferPrometheusMetrics {
	return m.transferMetrics
}
