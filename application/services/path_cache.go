package services

import (
	"sort"
	"sync"
	"time"

	"topicgraph-backend/pkg/observability"
)

// PathCache memoizes computed shortest paths keyed by an unordered topic
// pair. Entries expire lazily on access after a TTL; when an insertion pushes
// the cache past its maximum size, the least-frequently and then
// least-recently used entries are evicted until one slot is free again.
type PathCache struct {
	mu      sync.Mutex
	entries map[string]*pathEntry
	maxSize int
	ttl     time.Duration
	clock   func() time.Time
	metrics *observability.Collector
}

type pathEntry struct {
	// path is stored in canonical order: it starts with the
	// lexicographically smaller of the two endpoint IDs.
	path        []string
	accessCount int
	lastAccess  time.Time
}

// NewPathCache creates a path cache with the given capacity and entry TTL.
// metrics may be nil to disable instrumentation.
func NewPathCache(maxSize int, ttl time.Duration, metrics *observability.Collector) *PathCache {
	return &PathCache{
		entries: make(map[string]*pathEntry),
		maxSize: maxSize,
		ttl:     ttl,
		clock:   time.Now,
		metrics: metrics,
	}
}

// pairKey builds the canonical unordered key: the two IDs joined with the
// lexicographically smaller one first, so (a,b) and (b,a) share one entry.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Get returns the cached path oriented so it starts at a, or false when the
// pair is absent or expired. A hit bumps the access counter and refreshes the
// last-access timestamp.
func (c *PathCache) Get(a, b string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := pairKey(a, b)
	entry, ok := c.entries[key]
	if !ok {
		c.metrics.RecordPathCacheMiss()
		return nil, false
	}

	now := c.clock()
	if now.Sub(entry.lastAccess) > c.ttl {
		delete(c.entries, key)
		c.metrics.RecordPathCacheMiss()
		return nil, false
	}

	c.metrics.RecordPathCacheHit()
	entry.accessCount++
	entry.lastAccess = now

	path := make([]string, len(entry.path))
	copy(path, entry.path)
	if len(path) > 1 && path[0] != a {
		reverse(path)
	}
	return path, true
}

// Put stores a path for the pair (a,b), reoriented into canonical order.
func (c *PathCache) Put(a, b string, path []string) {
	if len(path) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]string, len(path))
	copy(stored, path)
	lo := a
	if b < a {
		lo = b
	}
	if len(stored) > 1 && stored[0] != lo {
		reverse(stored)
	}

	c.entries[pairKey(a, b)] = &pathEntry{
		path:        stored,
		accessCount: 1,
		lastAccess:  c.clock(),
	}

	if len(c.entries) > c.maxSize {
		c.evict(len(c.entries) - c.maxSize + 1)
	}
}

// evict removes the n entries that rank lowest by (accessCount, lastAccess)
// ascending, freeing a slot beyond the strict bound for future reuse.
func (c *PathCache) evict(n int) {
	type ranked struct {
		key   string
		entry *pathEntry
	}
	all := make([]ranked, 0, len(c.entries))
	for key, entry := range c.entries {
		all = append(all, ranked{key: key, entry: entry})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].entry.accessCount != all[j].entry.accessCount {
			return all[i].entry.accessCount < all[j].entry.accessCount
		}
		return all[i].entry.lastAccess.Before(all[j].entry.lastAccess)
	})

	evicted := 0
	for i := 0; i < n && i < len(all); i++ {
		delete(c.entries, all[i].key)
		evicted++
	}
	c.metrics.RecordPathCacheEvictions(evicted)
}

// Clear removes every entry.
func (c *PathCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*pathEntry)
}

// Len returns the current number of entries.
func (c *PathCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// MaxSize returns the configured capacity.
func (c *PathCache) MaxSize() int {
	return c.maxSize
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
