package content

import (
	"context"
	"sync"
)

// InMemoryCache implements an in-memory payload cache.
type InMemoryCache struct {
	mu       sync.RWMutex
	payloads map[Variant]*Payload
}

// NewInMemoryCache creates a new in-memory cache.
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		payloads: make(map[Variant]*Payload),
	}
}

func (c *InMemoryCache) Close(ctx context.Context) error {
	return nil
}

func (c *InMemoryCache) Get(ctx context.Context, variant Variant) (*Payload, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.payloads[variant]
	if !ok {
		return nil, &ErrNotFound{}
	}
	return payload, nil
}

func (c *InMemoryCache) Put(ctx context.Context, payload *Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads[payload.Variant] = payload
	return nil
}
