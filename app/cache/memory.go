package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/pkg/errors"
)

// MemoryCache keeps pages in process memory. Entries are bounded by body
// size, 64 MiB in total.
type MemoryCache struct {
	inner *ristretto.Cache[string, *Entry]
}

func NewMemoryCache() (*MemoryCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, *Entry]{
		NumCounters:        1e5,
		MaxCost:            64 << 20,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create memory cache")
	}
	return &MemoryCache{inner: c}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (*Entry, bool) {
	return c.inner.Get(key)
}

// Set blocks until the entry is visible to Get.
func (c *MemoryCache) Set(_ context.Context, key string, entry *Entry, ttl time.Duration) error {
	if !c.inner.SetWithTTL(key, entry, int64(len(entry.Body))+1, ttl) {
		return errors.New("memory cache rejected entry")
	}
	c.inner.Wait()
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.inner.Clear()
	return nil
}

func (c *MemoryCache) Close() error {
	c.inner.Close()
	return nil
}
