package cache

import (
	"context"
	"encoding/json"
	"time"

	"yatube/app/logger"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// KeyPrefix namespaces every page key in Redis.
const KeyPrefix = "yatube:page:"

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache shares cached pages between server instances.
type RedisCache struct {
	inner *redis.Client
}

// NewRedisCache connects and pings the server.
func NewRedisCache(opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", opts.Addr)
	}
	return &RedisCache{inner: client}, nil
}

// Get treats any Redis failure as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) (*Entry, bool) {
	data, err := c.inner.Get(ctx, KeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Log.WithError(err).Warn("redis page cache get failed")
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Log.WithError(err).WithField("key", key).Warn("corrupt page cache entry")
		return nil, false
	}
	return &entry, true
}

func (c *RedisCache) Set(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "encode page cache entry")
	}
	return errors.Wrap(c.inner.Set(ctx, KeyPrefix+key, data, ttl).Err(), "redis set")
}

// Clear deletes the keys under KeyPrefix in batches.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.inner.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.inner.Del(ctx, batch...).Err(); err != nil {
				return errors.Wrap(err, "redis del")
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrap(err, "redis scan")
	}
	if len(batch) > 0 {
		return errors.Wrap(c.inner.Del(ctx, batch...).Err(), "redis del")
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.inner.Close()
}
