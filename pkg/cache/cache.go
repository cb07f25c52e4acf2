// Package cache stores serialized values under string keys with a TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is implemented by the in-memory and Redis backends.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Invalidate removes all keys starting with prefix.
	Invalidate(ctx context.Context, prefix string) error
}

// entry represents a cached value with expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a simple in-memory cache with TTL
type Memory struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// NewMemory creates a new in-memory cache
func NewMemory() *Memory {
	return &Memory{items: map[string]entry{}, now: time.Now}
}

// Get retrieves a value from the cache if it hasn't expired
func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.items[key]
	if !exists || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a value in the cache with a given TTL. A non-positive TTL deletes the key.
func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl <= 0 {
		delete(c.items, key)
		return nil
	}
	c.items[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Invalidate removes all items matching a prefix
func (c *Memory) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

// GetJSON reads key and decodes it into a T. A miss returns ok=false and no error.
func GetJSON[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var v T
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return v, false, err
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, false, fmt.Errorf("decoding cached %q: %w", key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q for cache: %w", key, err)
	}
	return c.Set(ctx, key, raw, ttl)
}
