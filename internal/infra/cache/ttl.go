package cache

import (
	"sync"
	"time"
)

// Clock supplies the current time; injected so expiry is testable.
type Clock func() time.Time

type entry[V any] struct {
	value   V
	touched time.Time
}

// TTL is a small in-process get-or-compute cache with a fixed expiry
// per key. Entries are evicted lazily on access.
type TTL[V any] struct {
	ttl   time.Duration
	clock Clock

	mu      sync.Mutex
	entries map[string]entry[V]
}

func New[V any](ttl time.Duration, clock Clock) *TTL[V] {
	if clock == nil {
		clock = time.Now
	}
	return &TTL[V]{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry[V]),
	}
}

// GetOrCompute returns the cached value for key, computing and storing
// it when absent or expired. A compute error is returned without
// caching, so the next caller retries.
func (c *TTL[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	c.mu.Lock()
	now := c.clock()
	if cached, ok := c.entries[key]; ok && now.Sub(cached.touched) < c.ttl {
		c.mu.Unlock()
		return cached.value, nil
	}
	c.mu.Unlock()

	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, touched: now}
	c.mu.Unlock()
	return value, nil
}

// Invalidate drops a single key.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
