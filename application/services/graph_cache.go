package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"topicgraph-backend/application/ports"
	"topicgraph-backend/domain/core/aggregates"
	pkgerrors "topicgraph-backend/pkg/errors"
	"topicgraph-backend/pkg/observability"
)

// GraphCache memoizes the adjacency snapshot for a bounded time window.
// Expiry is checked lazily on access; there is no background sweep, so a
// stale snapshot is replaced on the first query that touches it. A rebuild
// discards the previous snapshot entirely.
type GraphCache struct {
	directory ports.TopicDirectory
	ttl       time.Duration
	logger    *zap.Logger
	metrics   *observability.Collector
	clock     func() time.Time

	mu       sync.Mutex
	snapshot *aggregates.Graph
	builtAt  time.Time
}

// NewGraphCache creates a graph cache over the given directory. metrics may
// be nil to disable instrumentation.
func NewGraphCache(directory ports.TopicDirectory, ttl time.Duration, logger *zap.Logger, metrics *observability.Collector) *GraphCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphCache{
		directory: directory,
		ttl:       ttl,
		logger:    logger,
		metrics:   metrics,
		clock:     time.Now,
	}
}

// GetOrBuild returns the cached snapshot when it is younger than the TTL,
// otherwise it fetches all current topics and rebuilds. The lock is held
// across the rebuild so concurrent queries share one directory call.
func (c *GraphCache) GetOrBuild(ctx context.Context) (*aggregates.Graph, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.clock().Sub(c.builtAt) < c.ttl {
		return c.snapshot, nil
	}

	start := time.Now()
	topics, err := c.directory.FindAllCurrent(ctx)
	if err != nil {
		return nil, pkgerrors.NewDirectoryError("load current topics", err)
	}

	snapshot, dangling := aggregates.NewGraphFromTopics(topics)
	for _, ref := range dangling {
		c.logger.Warn("dropping edge to missing parent topic",
			zap.String("topicID", ref.TopicID),
			zap.String("parentTopicID", ref.ParentID),
		)
	}

	c.snapshot = snapshot
	c.builtAt = c.clock()
	c.metrics.RecordGraphRebuild(time.Since(start))
	c.logger.Debug("graph snapshot rebuilt",
		zap.Int("nodes", snapshot.NodeCount()),
		zap.Int("edges", snapshot.EdgeCount()),
	)
	return c.snapshot, nil
}

// Invalidate clears the snapshot unconditionally.
func (c *GraphCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
	c.builtAt = time.Time{}
}

// Valid reports whether a non-expired snapshot is currently held.
func (c *GraphCache) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil && c.clock().Sub(c.builtAt) < c.ttl
}
