package ports

import (
	"context"

	"topicgraph-backend/domain/core/entities"
)

// TopicDirectory is the read interface over current topic state, supplied by
// the embedding persistence layer. "Current" means the latest version of a
// topic that has not been soft-deleted.
// This is a port in hexagonal architecture - the graph service doesn't know
// about the implementation.
type TopicDirectory interface {
	// FindCurrent returns the current version of a topic, or nil when no
	// current version exists.
	FindCurrent(ctx context.Context, id string) (*entities.Topic, error)

	// FindAllCurrent returns every current topic. Used only when rebuilding
	// the graph snapshot.
	FindAllCurrent(ctx context.Context) ([]*entities.Topic, error)
}
