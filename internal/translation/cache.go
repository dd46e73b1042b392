package translation

import (
	"strings"
	"sync"

	"github.com/at-ishikawa/mizodict/internal/metrics"
)

// Cache stores translations per direction, keyed by the normalized query.
type Cache interface {
	Get(direction Direction, text string) (string, bool)
	Set(direction Direction, text, translation string)
	Len(direction Direction) int
	Clear()
}

// MemoryCache is an unbounded process-lifetime Cache.
type MemoryCache struct {
	name string

	mu      sync.RWMutex
	entries map[Direction]map[string]string
}

// NewMemoryCache returns an empty cache. name labels its hit and miss metrics.
func NewMemoryCache(name string) *MemoryCache {
	return &MemoryCache{
		name:    name,
		entries: make(map[Direction]map[string]string),
	}
}

func cacheKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func (c *MemoryCache) Get(direction Direction, text string) (string, bool) {
	c.mu.RLock()
	translation, ok := c.entries[direction][cacheKey(text)]
	c.mu.RUnlock()

	metrics.ObserveCache(c.name, string(direction), ok)
	return translation, ok
}

func (c *MemoryCache) Set(direction Direction, text, translation string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[direction] == nil {
		c.entries[direction] = make(map[string]string)
	}
	c.entries[direction][cacheKey(text)] = translation
}

func (c *MemoryCache) Len(direction Direction) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries[direction])
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Direction]map[string]string)
}
