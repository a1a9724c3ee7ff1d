// Package cache provides a small TTL cache used to memoize derived
// summary snapshots between writes.
package cache

import (
	"sync"
	"time"
)

// TTLCache is a size-bounded cache with per-entry expiry. When full,
// the entry inserted earliest is evicted.
type TTLCache[T any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*entry[T]
	seq     int64
}

type entry[T any] struct {
	data      T
	expiresAt time.Time
	insertSeq int64
}

// New creates a TTL cache holding at most maxSize entries.
func New[T any](maxSize int, ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*entry[T]),
	}
}

// Get retrieves a value, treating expired entries as absent.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.items[key]
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.items, key)
		return zero, false
	}
	return e.data, true
}

// Set stores a value, evicting the oldest entry when over capacity.
func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.items[key] = &entry[T]{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
		insertSeq: c.seq,
	}

	if len(c.items) <= c.maxSize {
		return
	}
	var oldestKey string
	var oldestSeq int64
	for k, e := range c.items {
		if oldestKey == "" || e.insertSeq < oldestSeq {
			oldestKey = k
			oldestSeq = e.insertSeq
		}
	}
	delete(c.items, oldestKey)
}

// Delete removes a key.
func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// CleanExpired drops expired entries, returning how many were removed.
func (c *TTLCache[T]) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Size returns the current number of entries.
func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
