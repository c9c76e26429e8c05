package formula

import "sync"

// Cache memoizes parse results by the raw source string, so formulas stored
// on entities are tokenized once rather than on every aggregation pass.
// Failed parses are cached too: the same string always fails the same way.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	expr Expr
	err  error
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) Parse(src string) (Expr, error) {
	c.mu.RLock()
	entry, ok := c.entries[src]
	c.mu.RUnlock()
	if ok {
		return entry.expr, entry.err
	}
	expr, err := Parse(src)
	c.mu.Lock()
	c.entries[src] = cacheEntry{expr: expr, err: err}
	c.mu.Unlock()
	return expr, err
}
