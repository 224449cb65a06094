package entities

import (
	"time"

	pkgerrors "topicgraph-backend/pkg/errors"
)

// Topic is a knowledge-base entry. Topics form a tree through ParentTopicID;
// the graph service reads them as nodes of an undirected graph and never
// mutates them.
type Topic struct {
	ID            string
	Name          string
	Content       string
	ParentTopicID *string
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTopic creates a topic record with full field validation.
// parentID may be nil for root topics.
func NewTopic(id, name, content string, parentID *string) (*Topic, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("topic ID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("topic name cannot be empty")
	}
	if parentID != nil && *parentID == id {
		return nil, pkgerrors.NewValidationError("topic cannot be its own parent")
	}

	now := time.Now()
	return &Topic{
		ID:            id,
		Name:          name,
		Content:       content,
		ParentTopicID: parentID,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// HasParent reports whether the topic links to a parent topic.
func (t *Topic) HasParent() bool {
	return t.ParentTopicID != nil && *t.ParentTopicID != ""
}

// Parent returns the parent topic ID, or the empty string for root topics.
func (t *Topic) Parent() string {
	if t.ParentTopicID == nil {
		return ""
	}
	return *t.ParentTopicID
}

// Clone returns a deep copy so callers cannot mutate shared records.
func (t *Topic) Clone() *Topic {
	clone := *t
	if t.ParentTopicID != nil {
		parent := *t.ParentTopicID
		clone.ParentTopicID = &parent
	}
	return &clone
}
