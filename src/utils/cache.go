package utils

import (
	"context"
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	value      T
	expiration time.Time
}

// TTLCache is an in-process key/value store whose entries expire a fixed duration
// after they were set. Expired entries are dropped lazily on read.
type TTLCache[T any] struct {
	entries map[string]cacheEntry[T]
	mutex   sync.RWMutex
	now     func() time.Time
}

// NewTTLCache initializes an empty cache.
func NewTTLCache[T any]() *TTLCache[T] {
	return &TTLCache[T]{
		entries: make(map[string]cacheEntry[T]),
		now:     time.Now,
	}
}

// WithClock replaces the time source, used by tests to move past expirations.
func (c *TTLCache[T]) WithClock(now func() time.Time) *TTLCache[T] {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.now = now
	return c
}

// Set stores value under key until duration has elapsed.
func (c *TTLCache[T]) Set(_ context.Context, key string, value T, duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = cacheEntry[T]{value: value, expiration: c.now().Add(duration)}
}

// Get retrieves the value for key if it is present and not expired.
func (c *TTLCache[T]) Get(_ context.Context, key string) (T, bool) {
	c.mutex.RLock()
	entry, ok := c.entries[key]
	now := c.now()
	c.mutex.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}
	if !now.Before(entry.expiration) {
		c.mutex.Lock()
		if current, still := c.entries[key]; still && current.expiration.Equal(entry.expiration) {
			delete(c.entries, key)
		}
		c.mutex.Unlock()
		var zero T
		return zero, false
	}
	return entry.value, true
}

// Len reports how many entries are stored, expired or not.
func (c *TTLCache[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
