// Package metrics registers the Prometheus instruments for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CacheHits              *prometheus.CounterVec
	CacheMisses            *prometheus.CounterVec
	RecommendationsServed  prometheus.Counter
	ReordersServed         prometheus.Counter
	RequestDurationSeconds *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default
// registry. Call once per process.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dayzero_cache_hits_total",
			Help: "Response cache hits by endpoint",
		}, []string{"endpoint"}),
		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dayzero_cache_misses_total",
			Help: "Response cache misses by endpoint",
		}, []string{"endpoint"}),
		RecommendationsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayzero_recommendations_served_total",
			Help: "Missing-item recommendation responses served",
		}),
		ReordersServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dayzero_reorders_served_total",
			Help: "Priority reorder responses served",
		}),
		RequestDurationSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dayzero_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
	}
}

// IncCacheHit records a cache hit for an endpoint. Safe on a nil
// receiver so metrics stay optional in tests.
func (m *Metrics) IncCacheHit(endpoint string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(endpoint).Inc()
}

// IncCacheMiss records a cache miss for an endpoint.
func (m *Metrics) IncCacheMiss(endpoint string) {
	if m == nil {
		return
	}
	m.CacheMisses.WithLabelValues(endpoint).Inc()
}

// IncRecommendationsServed counts one missing-items response.
func (m *Metrics) IncRecommendationsServed() {
	if m == nil {
		return
	}
	m.RecommendationsServed.Inc()
}

// IncReordersServed counts one reorder response.
func (m *Metrics) IncReordersServed() {
	if m == nil {
		return
	}
	m.ReordersServed.Inc()
}

// ObserveRequestDuration records one request's latency in seconds.
func (m *Metrics) ObserveRequestDuration(route string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDurationSeconds.WithLabelValues(route).Observe(seconds)
}
