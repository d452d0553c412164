package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/channel-scraper/internal/storage"
)

func newTestCache(t *testing.T) (*storage.ResolveCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := storage.NewResolveCache(mr.Addr())
	t.Cleanup(func() { cache.Close() })
	return cache, mr
}

func TestResolveCacheStoreAndLookup(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	url, ok, err := cache.Lookup(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, url)

	require.NoError(t, cache.Store(ctx, "acme", "https://www.youtube.com/@acme", time.Hour))

	url, ok, err = cache.Lookup(ctx, "acme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://www.youtube.com/@acme", url)
}

func TestResolveCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "acme", "https://www.youtube.com/@acme", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, ok, err := cache.Lookup(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveCacheForget(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, "acme", "https://www.youtube.com/@acme", time.Hour))
	require.NoError(t, cache.Forget(ctx, "acme"))

	_, ok, err := cache.Lookup(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveCachePing(t *testing.T) {
	cache, mr := newTestCache(t)
	require.NoError(t, cache.Ping(context.Background()))
	mr.Close()
	assert.Error(t, cache.Ping(context.Background()))
}
