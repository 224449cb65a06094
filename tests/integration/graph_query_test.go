package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topicgraph-backend/application/services"
	"topicgraph-backend/infrastructure/config"
	"topicgraph-backend/infrastructure/persistence/memory"
)

// seedTree builds the reference hierarchy in a fresh in-memory directory:
// root→A→{C,D}, root→B→{E→G, F}.
func seedTree(t *testing.T) *memory.InMemoryTopicDirectory {
	t.Helper()
	directory := memory.NewInMemoryTopicDirectory()

	parents := map[string]string{
		"A": "root", "B": "root",
		"C": "A", "D": "A",
		"E": "B", "F": "B",
		"G": "E",
	}
	_, err := directory.CreateTopicWithID("root", "Root", "the root topic", nil)
	require.NoError(t, err)
	for _, id := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		parent := parents[id]
		_, err := directory.CreateTopicWithID(id, "Topic "+id, "content of "+id, &parent)
		require.NoError(t, err)
	}
	return directory
}

// TestGraphQueriesAgainstMemoryDirectory wires the real service stack: env
// config, in-memory directory, graph service.
func TestGraphQueriesAgainstMemoryDirectory(t *testing.T) {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	directory := seedTree(t)
	service, err := services.NewGraphService(directory, cfg.SearchConfig(), zap.NewNop())
	require.NoError(t, err)

	t.Run("shortest path across the tree", func(t *testing.T) {
		path, err := service.ShortestPath(ctx, "C", "G")
		require.NoError(t, err)
		require.Len(t, path, 6)
		assert.Equal(t, "C", path[0].ID)
		assert.Equal(t, "G", path[5].ID)
		assert.Equal(t, "Topic G", path[5].Name)
	})

	t.Run("distance and connectivity agree", func(t *testing.T) {
		distance, err := service.Distance(ctx, "C", "G")
		require.NoError(t, err)
		assert.Equal(t, 5, distance)
		assert.True(t, service.AreConnected(ctx, "C", "G"))
	})

	t.Run("neighborhood of the root", func(t *testing.T) {
		topics, err := service.TopicsWithinDistance(ctx, "root", 1)
		require.NoError(t, err)
		ids := make([]string, len(topics))
		for i, topic := range topics {
			ids[i] = topic.ID
		}
		assert.ElementsMatch(t, []string{"root", "A", "B"}, ids)
	})

	t.Run("whole tree is one component", func(t *testing.T) {
		report, err := service.ValidateConnectivity(ctx)
		require.NoError(t, err)
		assert.True(t, report.FullyConnected)
		assert.Equal(t, 1, report.ComponentCount)
	})
}

// TestTopicWritesRequireCacheInvalidation documents the consistency model:
// the service answers from a point-in-time snapshot until the cache is
// cleared or expires.
func TestTopicWritesRequireCacheInvalidation(t *testing.T) {
	ctx := context.Background()
	directory := seedTree(t)
	service, err := services.NewGraphService(directory, nil, zap.NewNop())
	require.NoError(t, err)

	distance, err := service.Distance(ctx, "C", "G")
	require.NoError(t, err)
	require.Equal(t, 5, distance)

	// Reparent G directly under root.
	newParent := "root"
	_, err = directory.UpdateTopic("G", "Topic G", "content of G", &newParent)
	require.NoError(t, err)

	// The stale snapshot and path cache still answer with the old distance.
	stale, err := service.Distance(ctx, "C", "G")
	require.NoError(t, err)
	assert.Equal(t, 5, stale)

	service.ClearCache()
	fresh, err := service.Distance(ctx, "C", "G")
	require.NoError(t, err)
	assert.Equal(t, 3, fresh, "C-A-root-G after reparenting")
}

func TestDeletedTopicLeavesTheGraph(t *testing.T) {
	ctx := context.Background()
	directory := seedTree(t)
	service, err := services.NewGraphService(directory, nil, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, directory.DeleteTopic("B"))

	// B's subtree loses its route to the root; E/F/G keep their parent links
	// to the now-missing B, which the builder drops with a warning.
	report, err := service.ValidateConnectivity(ctx)
	require.NoError(t, err)
	assert.False(t, report.FullyConnected)

	path, err := service.ShortestPath(ctx, "C", "G")
	require.NoError(t, err)
	assert.Empty(t, path)
}
