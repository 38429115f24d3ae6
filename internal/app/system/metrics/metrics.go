// Package metrics holds the Prometheus collectors shared by the API client,
// the query cache, and the mutation runner.
//
// Collectors are registered on a private registry so tests can build as
// many Sets as they like without duplicate-registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Set is a bundle of collectors plus the registry they live on.
type Set struct {
	Registry *prometheus.Registry

	APIRequests *prometheus.CounterVec
	APILatency  *prometheus.HistogramVec

	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheInvalidations *prometheus.CounterVec
	CacheEntries       prometheus.Gauge

	Mutations *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Set {
	reg := prometheus.NewRegistry()
	s := &Set{
		Registry: reg,
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_api_requests_total",
			Help: "Requests sent to the platform API by endpoint and status code.",
		}, []string{"endpoint", "code"}),
		APILatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "coursehub_api_request_seconds",
			Help:    "Platform API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_cache_hits_total",
			Help: "Query cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_cache_misses_total",
			Help: "Query cache misses.",
		}),
		CacheInvalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_cache_invalidations_total",
			Help: "Query cache invalidations by collection.",
		}, []string{"collection"}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "coursehub_cache_entries",
			Help: "Entries currently held in the query cache.",
		}),
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coursehub_mutations_total",
			Help: "Mutations by action and outcome.",
		}, []string{"action", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.APIRequests, s.APILatency,
		s.CacheHits, s.CacheMisses, s.CacheInvalidations, s.CacheEntries,
		s.Mutations,
	)
	return s
}

// Handler serves the registry in the Prometheus text format.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})
}
