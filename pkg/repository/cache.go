package repository

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Cache is the byte store behind CachedRepository. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, key string)
}

type memoryCache struct {
	c *gocache.Cache
}

// NewMemoryCache returns an in-process Cache. Entries expire after ttl and
// expired entries are purged every cleanup interval.
func NewMemoryCache(ttl, cleanup time.Duration) Cache {
	return &memoryCache{c: gocache.New(ttl, cleanup)}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	if x, found := m.c.Get(key); found {
		return x.([]byte), true
	}
	return nil, false
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) {
	m.c.Set(key, value, gocache.DefaultExpiration)
}

func (m *memoryCache) Delete(_ context.Context, key string) {
	m.c.Delete(key)
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache returns a Cache backed by the given redis client. Redis
// failures degrade to cache misses; they never fail the read path.
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *redisCache) Set(ctx context.Context, key string, value []byte) {
	r.client.Set(ctx, key, value, r.ttl)
}

func (r *redisCache) Delete(ctx context.Context, key string) {
	r.client.Del(ctx, key)
}
