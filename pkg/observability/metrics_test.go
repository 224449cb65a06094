package observability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecords(t *testing.T) {
	c := NewCollector("test")

	c.RecordPathCacheHit()
	c.RecordPathCacheHit()
	c.RecordPathCacheMiss()
	c.RecordPathCacheEvictions(3)
	c.RecordGraphRebuild(5 * time.Millisecond)
	c.RecordSearch("shortest_path", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.PathCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PathCacheMisses))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.PathCacheEvictions))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.GraphRebuilds))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestCollectorsAreIndependent(t *testing.T) {
	// Two collectors under the same namespace must not collide: each owns
	// its registry.
	a := NewCollector("test")
	b := NewCollector("test")

	a.RecordPathCacheHit()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.PathCacheHits))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PathCacheHits))
}

func TestCollectorNilReceiverIsSafe(t *testing.T) {
	var c *Collector

	c.RecordPathCacheHit()
	c.RecordPathCacheMiss()
	c.RecordPathCacheEvictions(2)
	c.RecordGraphRebuild(time.Millisecond)
	c.RecordSearch("shortest_path", time.Millisecond)
	assert.Nil(t, c.Registry())
}

func TestInitTracing(t *testing.T) {
	ctx := context.Background()
	tp, err := InitTracing(ctx, TracingConfig{
		ServiceName: "topicgraph-test",
		Environment: "test",
	})
	require.NoError(t, err)
	require.NotNil(t, tp.Tracer())

	_, span := tp.Tracer().Start(ctx, "test-span")
	span.End()

	shutdownCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	// No collector is listening in tests; the flush may fail, which is fine.
	_ = tp.Shutdown(shutdownCtx)
}
