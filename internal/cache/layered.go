package cache

import "time"

// LayeredCache checks memory first, then disk, promoting disk hits into
// memory. Either layer may be the sole one; see New.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// New builds the cache configured by ttl and diskDir. An empty diskDir
// yields a memory-only cache.
func New(ttl time.Duration, diskDir string) Cache {
	memory := NewMemoryCache(ttl, 10*time.Minute)
	if diskDir == "" {
		return memory
	}
	return &LayeredCache{
		memory: memory,
		disk:   NewDiskCache(diskDir, ttl),
	}
}

// Get checks memory, then disk.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}
	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}
	return nil, false
}

// Set stores a value in both layers.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.memory.Set(key, value, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, value, ttl)
}

// Delete removes a value from both layers.
func (c *LayeredCache) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers.
func (c *LayeredCache) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
