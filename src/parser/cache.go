package parser

import "sync"

// DefaultCacheSize bounds the parse cache when no size is configured.
const DefaultCacheSize = 1000

// Cache stores values keyed by a string.
// Thread-safe with RWMutex and FIFO eviction.
type Cache[V any] struct {
	mu      sync.RWMutex
	cache   map[string]V
	order   []string // FIFO insertion order
	maxSize int
	hits    uint64
	misses  uint64
}

// NewCache creates a cache holding at most maxSize entries. A non-positive
// size selects DefaultCacheSize.
func NewCache[V any](maxSize int) *Cache[V] {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cache[V]{
		cache:   make(map[string]V),
		order:   make([]string, 0),
		maxSize: maxSize,
	}
}

// Fetch retrieves the cached value or builds and stores it using fn.
// Values for which fn fails are not stored.
func (c *Cache[V]) Fetch(key string, fn func() (V, error)) (V, error) {
	// Fast path: check if key exists with read lock
	c.mu.RLock()
	if v, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return v, nil
	}
	c.mu.RUnlock()

	// Slow path: acquire write lock and check again (double-check locking)
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.cache[key]; ok {
		c.hits++
		return v, nil
	}
	c.misses++

	val, err := fn()
	if err != nil {
		return val, err
	}

	// FIFO eviction: remove oldest entry if at capacity
	if len(c.cache) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
	}

	c.cache[key] = val
	c.order = append(c.order, key)
	return val, nil
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats returns hit and miss counts.
func (c *Cache[V]) Stats() (hits, misses uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
