package repository

import (
	"context"
	"sync"

	"github.com/project/catalog/pkg/lfu"
)

var _ Backend = (*CachedBackend)(nil)

// CachedBackend serves repeated Read calls from an LFU cache. Only Read fills the
// cache; Write and Delete go to the wrapped backend first and then invalidate the
// entry. ReadAll is never cached. Records changed by another process are not
// observed until evicted.
type CachedBackend struct {
	Backend

	mu    sync.Mutex
	cache *lfu.Cache[int64, []byte]
	// epoch is bumped on every invalidation. A Read only fills the cache when no
	// invalidation happened while it was waiting on the backend.
	epoch uint64
}

func NewCachedBackend(backend Backend, capacity int) *CachedBackend {
	return &CachedBackend{
		Backend: backend,
		cache:   lfu.New[int64, []byte](capacity),
	}
}

func (c *CachedBackend) Read(ctx context.Context, id int64) ([]byte, error) {
	c.mu.Lock()
	data, err := c.cache.Get(id)
	epoch := c.epoch
	c.mu.Unlock()
	if err == nil {
		return clone(data), nil
	}

	data, err = c.Backend.Read(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.epoch == epoch {
		c.cache.Put(id, clone(data))
	}
	c.mu.Unlock()
	return data, nil
}

func (c *CachedBackend) Write(ctx context.Context, id int64, data []byte) error {
	defer c.invalidate(id)
	return c.Backend.Write(ctx, id, data)
}

func (c *CachedBackend) Delete(ctx context.Context, id int64) (bool, error) {
	defer c.invalidate(id)
	return c.Backend.Delete(ctx, id)
}

func (c *CachedBackend) invalidate(id int64) {
	c.mu.Lock()
	c.epoch++
	c.cache.Remove(id)
	c.mu.Unlock()
}
