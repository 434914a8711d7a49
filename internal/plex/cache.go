package plex

import (
	"sync"
	"time"
)

// inventoryCache holds the last successful section listing for ttl.
type inventoryCache struct {
	mu      sync.RWMutex
	items   []InventoryItem
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

func newInventoryCache(ttl time.Duration) *inventoryCache {
	return &inventoryCache{ttl: ttl, now: time.Now}
}

func (c *inventoryCache) get() ([]InventoryItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.items == nil || c.now().After(c.expires) {
		return nil, false
	}
	return append(make([]InventoryItem, 0, len(c.items)), c.items...), true
}

func (c *inventoryCache) set(items []InventoryItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append(make([]InventoryItem, 0, len(items)), items...)
	c.expires = c.now().Add(c.ttl)
}

func (c *inventoryCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
