package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResolveCache remembers recently resolved aliases so repeat runs skip the
// search round-trip. Entries expire after the configured TTL.
type ResolveCache struct {
	client *redis.Client
}

func NewResolveCache(addr string) *ResolveCache {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &ResolveCache{client: rdb}
}

func (c *ResolveCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *ResolveCache) Close() error {
	return c.client.Close()
}

func resolveKey(alias string) string {
	return fmt.Sprintf("resolved:%s", alias)
}

// Store caches a resolved channel URL for alias with a TTL.
func (c *ResolveCache) Store(ctx context.Context, alias, channelURL string, ttl time.Duration) error {
	return c.client.Set(ctx, resolveKey(alias), channelURL, ttl).Err()
}

// Lookup returns the cached channel URL for alias, if present.
func (c *ResolveCache) Lookup(ctx context.Context, alias string) (string, bool, error) {
	val, err := c.client.Get(ctx, resolveKey(alias)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Forget drops a cached alias, forcing the next run to re-search it.
func (c *ResolveCache) Forget(ctx context.Context, alias string) error {
	return c.client.Del(ctx, resolveKey(alias)).Err()
}
