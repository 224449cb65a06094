package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"topicgraph-backend/domain/core/entities"
	pkgerrors "topicgraph-backend/pkg/errors"
)

// InMemoryTopicDirectory provides an in-memory, versioned implementation of
// the TopicDirectory port. Writes append a new version; deletes are soft, so
// "current" means the latest version of a topic that is not deleted. Intended
// for tests and single-process embeddings.
type InMemoryTopicDirectory struct {
	mu       sync.RWMutex
	versions map[string][]topicVersion
}

type topicVersion struct {
	topic   entities.Topic
	deleted bool
}

// NewInMemoryTopicDirectory creates an empty in-memory topic directory.
func NewInMemoryTopicDirectory() *InMemoryTopicDirectory {
	return &InMemoryTopicDirectory{
		versions: make(map[string][]topicVersion),
	}
}

// CreateTopic creates a topic with a generated ID.
func (d *InMemoryTopicDirectory) CreateTopic(name, content string, parentID *string) (*entities.Topic, error) {
	return d.CreateTopicWithID(uuid.New().String(), name, content, parentID)
}

// CreateTopicWithID creates a topic with an explicit ID. Recreating a
// soft-deleted ID starts a fresh version history.
func (d *InMemoryTopicDirectory) CreateTopicWithID(id, name, content string, parentID *string) (*entities.Topic, error) {
	topic, err := entities.NewTopic(id, name, content, parentID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if current := d.currentLocked(id); current != nil {
		return nil, pkgerrors.NewValidationError("topic " + id + " already exists")
	}
	d.versions[id] = []topicVersion{{topic: *topic}}
	return topic.Clone(), nil
}

// UpdateTopic appends a new version of an existing topic.
func (d *InMemoryTopicDirectory) UpdateTopic(id, name, content string, parentID *string) (*entities.Topic, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.currentLocked(id)
	if current == nil {
		return nil, pkgerrors.NewNotFoundError("topic " + id)
	}

	updated, err := entities.NewTopic(id, name, content, parentID)
	if err != nil {
		return nil, err
	}
	updated.Version = current.Version + 1
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now()

	d.versions[id] = append(d.versions[id], topicVersion{topic: *updated})
	return updated.Clone(), nil
}

// DeleteTopic soft-deletes a topic by appending a deletion marker version.
func (d *InMemoryTopicDirectory) DeleteTopic(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	current := d.currentLocked(id)
	if current == nil {
		return pkgerrors.NewNotFoundError("topic " + id)
	}

	marker := *current
	marker.Version = current.Version + 1
	marker.UpdatedAt = time.Now()
	d.versions[id] = append(d.versions[id], topicVersion{topic: marker, deleted: true})
	return nil
}

// FindCurrent returns the latest non-deleted version of a topic, or nil.
func (d *InMemoryTopicDirectory) FindCurrent(ctx context.Context, id string) (*entities.Topic, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	current := d.currentLocked(id)
	if current == nil {
		return nil, nil
	}
	return current.Clone(), nil
}

// FindAllCurrent returns every latest non-deleted topic.
func (d *InMemoryTopicDirectory) FindAllCurrent(ctx context.Context) ([]*entities.Topic, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	topics := make([]*entities.Topic, 0, len(d.versions))
	for id := range d.versions {
		if current := d.currentLocked(id); current != nil {
			topics = append(topics, current.Clone())
		}
	}
	return topics, nil
}

// currentLocked returns the latest version of id unless it is deleted.
// Callers must hold at least a read lock.
func (d *InMemoryTopicDirectory) currentLocked(id string) *entities.Topic {
	history := d.versions[id]
	if len(history) == 0 {
		return nil
	}
	latest := history[len(history)-1]
	if latest.deleted {
		return nil
	}
	return &latest.topic
}
