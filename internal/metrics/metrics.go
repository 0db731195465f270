package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sapapi"

// Metrics holds the service collectors on a dedicated registry.
type Metrics struct {
	registry        *prometheus.Registry
	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Number of calls made to the OData backend.",
		}, []string{"operation", "status"}),
		backendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Latency of calls made to the OData backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of API requests served.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.backendRequests,
		m.backendDuration,
		m.httpRequests,
	)

	return m
}

// ObserveBackendCall records a backend call. A zero status code marks a transport failure.
func (m *Metrics) ObserveBackendCall(operation string, statusCode int, elapsed time.Duration) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}

	m.backendRequests.WithLabelValues(operation, status).Inc()
	m.backendDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRequest records a served API request.
func (m *Metrics) ObserveRequest(route string, statusCode int) {
	m.httpRequests.WithLabelValues(route, strconv.Itoa(statusCode)).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
