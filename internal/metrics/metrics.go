// Package metrics owns the Prometheus registry and the collectors the
// HTTP layer and the item service report to.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shopping"

// Store operation results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Metrics is a private registry plus the collectors registered on it.
// Each Server gets its own instance so tests never collide on the
// default registerer.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	StoreOperations *prometheus.CounterVec
}

// New creates the registry with Go runtime and process collectors and the
// application collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		StoreOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Item store calls by operation and result.",
			},
			[]string{"operation", "result"},
		),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStore records one store call.
func (m *Metrics) ObserveStore(operation string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.StoreOperations.WithLabelValues(operation, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
