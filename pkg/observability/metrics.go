// Package observability provides the Prometheus metrics and OpenTelemetry
// tracing surface of the graph service. The service records into these
// instruments; the embedding application decides where they are scraped or
// exported to.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus metrics of one graph service instance. Each
// collector owns its registry, so independent instances never collide on
// registration; the embedding application mounts Registry() on its scrape
// endpoint. All recording helpers are safe on a nil receiver.
type Collector struct {
	registry *prometheus.Registry

	PathCacheHits      prometheus.Counter
	PathCacheMisses    prometheus.Counter
	PathCacheEvictions prometheus.Counter

	GraphRebuilds       prometheus.Counter
	GraphRebuildSeconds prometheus.Histogram

	SearchSeconds *prometheus.HistogramVec
}

// NewCollector creates a collector with its own registry under the given
// metric namespace.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	pathCacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "path_cache_hits_total",
		Help:      "Total number of path cache hits",
	})
	pathCacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "path_cache_misses_total",
		Help:      "Total number of path cache misses, expired entries included",
	})
	pathCacheEvictions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "path_cache_evictions_total",
		Help:      "Total number of path cache entries evicted on overflow",
	})
	graphRebuilds := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graph_rebuilds_total",
		Help:      "Total number of graph snapshot rebuilds",
	})
	graphRebuildSeconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graph_rebuild_duration_seconds",
		Help:      "Graph snapshot rebuild duration in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	searchSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Graph query duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	registry.MustRegister(
		pathCacheHits,
		pathCacheMisses,
		pathCacheEvictions,
		graphRebuilds,
		graphRebuildSeconds,
		searchSeconds,
	)

	return &Collector{
		registry:            registry,
		PathCacheHits:       pathCacheHits,
		PathCacheMisses:     pathCacheMisses,
		PathCacheEvictions:  pathCacheEvictions,
		GraphRebuilds:       graphRebuilds,
		GraphRebuildSeconds: graphRebuildSeconds,
		SearchSeconds:       searchSeconds,
	}
}

// RecordPathCacheHit counts a path cache hit.
func (c *Collector) RecordPathCacheHit() {
	if c == nil {
		return
	}
	c.PathCacheHits.Inc()
}

// RecordPathCacheMiss counts a path cache miss.
func (c *Collector) RecordPathCacheMiss() {
	if c == nil {
		return
	}
	c.PathCacheMisses.Inc()
}

// RecordPathCacheEvictions counts n evicted path cache entries.
func (c *Collector) RecordPathCacheEvictions(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.PathCacheEvictions.Add(float64(n))
}

// RecordGraphRebuild counts a snapshot rebuild and observes its duration.
func (c *Collector) RecordGraphRebuild(d time.Duration) {
	if c == nil {
		return
	}
	c.GraphRebuilds.Inc()
	c.GraphRebuildSeconds.Observe(d.Seconds())
}

// RecordSearch observes the duration of one query operation.
func (c *Collector) RecordSearch(operation string, d time.Duration) {
	if c == nil {
		return
	}
	c.SearchSeconds.WithLabelValues(operation).Observe(d.Seconds())
}

// Registry returns the Prometheus registry backing this collector.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}
