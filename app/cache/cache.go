// Package cache holds rendered pages for a short time.
package cache

import (
	"context"
	"time"

	"yatube/app/config"

	"github.com/pkg/errors"
)

// Entry is one cached response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache stores rendered responses by key until their TTL runs out.
type PageCache interface {
	Get(ctx context.Context, key string) (*Entry, bool)
	Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
	// Clear drops every cached page.
	Clear(ctx context.Context) error
	Close() error
}

// New builds the cache selected by cfg.CacheBackend.
func New(cfg config.Config) (PageCache, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		return NewRedisCache(RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.CacheMemory, "":
		return NewMemoryCache()
	}
	return nil, errors.Errorf("unknown cache backend %q", cfg.CacheBackend)
}
