package cache

import "sync"

// Cache is a goroutine safe read-through cache with generics type.
type Cache[K comparable, V any] struct {
	mu   sync.RWMutex
	data map[K]V
	read func(K) (V, error)
}

// NewCache creates a new Cache. read is called on a miss; errors are not cached.
func NewCache[K comparable, V any](read func(K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{
		mu:   sync.RWMutex{},
		data: make(map[K]V),
		read: read,
	}
}

// Get returns a value from the cache.
func (c *Cache[K, V]) Get(key K) (V, error) {
	c.mu.RLock()
	v, ok := c.data[key]
	c.mu.RUnlock()
	if ok {
		return v, nil // cache hit
	}

	v, err := c.read(key)
	if err != nil {
		return v, err // read error
	}

	c.mu.Lock()
	c.data[key] = v
	c.mu.Unlock()

	return v, nil
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
