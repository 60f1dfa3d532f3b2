package address

import (
	"context"
	"time"
)

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*Address),
		ttl:     ttl,
	}
}

func (c *Cache) Get(postalCode string) (Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[postalCode]
	if !exists {
		return Address{}, false
	}

	if time.Since(entry.LastUpdated) > c.ttl {
		return Address{}, false
	}

	return *entry, true
}

func (c *Cache) Set(postalCode string, addr Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	addr.LastUpdated = time.Now()
	c.entries[postalCode] = &addr
}

func (c *Cache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for code, entry := range c.entries {
		if now.Sub(entry.LastUpdated) > c.ttl {
			delete(c.entries, code)
		}
	}
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// StartCleanupRoutine evicts expired entries every interval until ctx is
// done.
func (c *Cache) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Cleanup()
			}
		}
	}()
}
