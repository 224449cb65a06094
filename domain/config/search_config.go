package config

import (
	"time"

	pkgerrors "topicgraph-backend/pkg/errors"
	"topicgraph-backend/pkg/utils"
)

// Defaults for graph search configuration.
const (
	DefaultCacheMaxSize   = 1000
	DefaultCacheTTL       = 5 * time.Minute
	DefaultMaxSearchDepth = 50
)

// SearchConfig holds the construction-time options of the graph service.
// The graph snapshot TTL is deliberately absent: it is fixed internally and
// not configurable per caller.
type SearchConfig struct {
	// CacheEnabled toggles the shortest-path result cache.
	CacheEnabled bool

	// CacheMaxSize bounds the number of cached paths.
	CacheMaxSize int `validate:"gt=0"`

	// CacheTTL is how long a cached path stays valid.
	CacheTTL time.Duration `validate:"gt=0"`

	// MaxSearchDepth bounds the number of nodes a path may contain.
	MaxSearchDepth int `validate:"gt=0"`

	// BidirectionalSearch selects the two-frontier search strategy.
	BidirectionalSearch bool
}

// DefaultSearchConfig returns the default search configuration.
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		CacheEnabled:        true,
		CacheMaxSize:        DefaultCacheMaxSize,
		CacheTTL:            DefaultCacheTTL,
		MaxSearchDepth:      DefaultMaxSearchDepth,
		BidirectionalSearch: true,
	}
}

// Normalize fills any omitted numeric option with its default. Boolean
// options are left as they are: false cannot be told apart from omitted, so
// callers wanting the default booleans start from DefaultSearchConfig (or
// pass a nil config to the service constructor) and override from there.
func (c *SearchConfig) Normalize() {
	if c.CacheMaxSize <= 0 {
		c.CacheMaxSize = DefaultCacheMaxSize
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.MaxSearchDepth <= 0 {
		c.MaxSearchDepth = DefaultMaxSearchDepth
	}
}

// Validate checks the configuration against its struct constraints.
func (c *SearchConfig) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError("invalid search configuration").WithCause(err)
	}
	return nil
}
