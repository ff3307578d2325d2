package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Registry holds the Prometheus metrics registry and HTTP handler
type Registry struct {
	registry *prometheus.Registry
	handler  http.Handler
	logger   *logrus.Logger
}

// NewRegistry creates a new metrics registry with Go runtime, process, and
// HTTP metrics pre-registered.
func NewRegistry(logger *logrus.Logger) *Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})

	return &Registry{
		registry: registry,
		handler:  handler,
		logger:   logger,
	}
}

// Handler returns the HTTP handler for the /metrics endpoint
func (r *Registry) Handler() http.Handler {
	return r.handler
}
