package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector defines the counters the core records
type Collector interface {
	RecordCacheLookup(view string, hit bool)
	RecordPublish(kind string, success bool)
	RecordAssignment(outcome string)
	ConnectionOpened()
	ConnectionClosed()
}

// NoOpCollector is a no-op implementation for when metrics aren't needed
type NoOpCollector struct{}

func (NoOpCollector) RecordCacheLookup(view string, hit bool) {}
func (NoOpCollector) RecordPublish(kind string, success bool) {}
func (NoOpCollector) RecordAssignment(outcome string)         {}
func (NoOpCollector) ConnectionOpened()                       {}
func (NoOpCollector) ConnectionClosed()                       {}

// PrometheusMetrics implements Collector on its own registry
type PrometheusMetrics struct {
	registry        *prometheus.Registry
	cacheLookups    *prometheus.CounterVec
	publishes       *prometheus.CounterVec
	assignments     *prometheus.CounterVec
	liveConnections prometheus.Gauge
}

// NewPrometheusMetrics creates the collectors and registers them
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opengym_cache_lookups_total",
			Help: "Cache lookups by view and result (hit or miss).",
		}, []string{"view", "result"}),
		publishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opengym_broadcast_publish_total",
			Help: "Change events published by kind and result.",
		}, []string{"kind", "result"}),
		assignments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opengym_court_assignments_total",
			Help: "Court assignment attempts by outcome.",
		}, []string{"outcome"}),
		liveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "opengym_live_connections",
			Help: "Open realtime connections on this instance.",
		}),
	}
	m.registry.MustRegister(m.cacheLookups, m.publishes, m.assignments, m.liveConnections)
	return m
}

func (m *PrometheusMetrics) RecordCacheLookup(view string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(view, result).Inc()
}

func (m *PrometheusMetrics) RecordPublish(kind string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	m.publishes.WithLabelValues(kind, result).Inc()
}

func (m *PrometheusMetrics) RecordAssignment(outcome string) {
	m.assignments.WithLabelValues(outcome).Inc()
}

func (m *PrometheusMetrics) ConnectionOpened() { m.liveConnections.Inc() }
func (m *PrometheusMetrics) ConnectionClosed() { m.liveConnections.Dec() }

// Handler serves the registry in the Prometheus text format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
