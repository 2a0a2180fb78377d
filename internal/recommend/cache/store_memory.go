package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	createdAt time.Time
	ttl       time.Duration
}

// Clock abstracts wall-clock time for testability.
type Clock func() time.Time

// InMemoryCache is a process-wide map cache with per-entry TTL and lazy
// eviction on read. A single mutex suffices: entries are immutable once
// inserted and eviction is a plain delete.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   Clock
}

// MemoryOption configures an InMemoryCache.
type MemoryOption func(*InMemoryCache)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) MemoryOption {
	return func(c *InMemoryCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewInMemory constructs an in-memory cache.
func NewInMemory(opts ...MemoryOption) *InMemoryCache {
	c := &InMemoryCache{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if c.clock().Sub(entry.createdAt) >= entry.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a fresher entry may have been
		// inserted since the read.
		if current, ok := c.entries[key]; ok && current.createdAt.Equal(entry.createdAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (c *InMemoryCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{payload: payload, createdAt: c.clock(), ttl: ttl}
	return nil
}

func (c *InMemoryCache) Purge(_ context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]memoryEntry)
	return n, nil
}

func (c *InMemoryCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}
