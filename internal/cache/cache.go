package cache

import (
	"strings"
	"time"

	ltime "github.com/trackboard/trackboard/pkg/time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Cache is a TTL-expiring key/value store. Entries are evicted lazily on the
// read that discovers them expired; there is no background sweep. The cache
// is not internally synchronized: the owner is expected to confine access to
// a single goroutine or guard it itself.
type Cache[V any] struct {
	entries map[string]entry[V]
	ttl     time.Duration
	watch   ltime.Watch
}

func New[V any](ttl time.Duration, watch ltime.Watch) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		watch:   watch,
	}
}

// Get returns the value for key when it was inserted less than ttl ago. An
// expired entry is removed on this read.
func (c *Cache[V]) Get(key string) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.watch.Now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any prior entry and resetting its
// insertion time.
func (c *Cache[V]) Set(key string, value V) {
	c.entries[key] = entry[V]{
		value:      value,
		insertedAt: c.watch.Now(),
	}
}

func (c *Cache[V]) Invalidate(key string) {
	delete(c.entries, key)
}

// InvalidatePattern removes every entry whose key contains pattern as a
// literal substring. Used for coarse invalidation such as dropping
// everything about one project.
func (c *Cache[V]) InvalidatePattern(pattern string) {
	for key := range c.entries {
		if strings.Contains(key, pattern) {
			delete(c.entries, key)
		}
	}
}

func (c *Cache[V]) Clear() {
	c.entries = make(map[string]entry[V])
}

// Len reports the number of entries, including any that expired but were not
// yet read.
func (c *Cache[V]) Len() int {
	return len(c.entries)
}
