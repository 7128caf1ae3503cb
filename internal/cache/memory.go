package cache

import (
	"context"
	"sync"
)

// MemoryCache is an in-memory implementation of ProductCache.
// Use this for development/testing or single-instance deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryCache creates a new in-memory product cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]Entry),
	}
}

// Get retrieves the entry for a product id.
func (c *MemoryCache) Get(ctx context.Context, id string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	return e, ok
}

// Set stores the entry for a product id.
func (c *MemoryCache) Set(ctx context.Context, id string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = e
}

// Delete removes the entry for a product id.
func (c *MemoryCache) Delete(ctx context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}

// Ensure MemoryCache implements ProductCache
var _ ProductCache = (*MemoryCache)(nil)
