package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process SummaryCache with expiration, used when no
// Redis instance is configured
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]*memoryItem
}

type memoryItem struct {
	value      string
	expireTime time.Time
}

// NewMemoryCache creates an in-memory cache and starts its cleanup loop
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]*memoryItem),
	}

	go c.cleanupExpired()

	return c
}

// Set stores a key-value pair with expiration
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &memoryItem{
		value:      value,
		expireTime: time.Now().Add(ttl),
	}
}

// Get retrieves a value by key. Expired entries report a miss.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists {
		return "", false
	}

	if time.Now().After(item.expireTime) {
		return "", false
	}

	return item.value, true
}

// cleanupExpired periodically removes expired items
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, item := range c.items {
			if now.After(item.expireTime) {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
