package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-management-api/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-management-api/pkg/config"
)

func setup(t *testing.T) (*miniredis.Miniredis, *cache.RedisCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, cache.NewRedisCache(client, time.Minute)
}

func TestRedisCache_MissYHit(t *testing.T) {
	ctx := context.Background()
	_, c := setup(t)

	data, ok, err := c.Get(ctx, "report:order:o1:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	require.NoError(t, c.Set(ctx, "report:order:o1:1", []byte("%PDF-1.4")))
	data, ok, err = c.Get(ctx, "report:order:o1:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestRedisCache_Expira(t *testing.T) {
	ctx := context.Background()
	mr, c := setup(t)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	mr.FastForward(2 * time.Minute)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr() // Addr no es válido tras Close
	client, err := cache.Connect(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	assert.NoError(t, client.Close())

	mr.Close()
	_, err = cache.Connect(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

func TestNoop_SiempreMiss(t *testing.T) {
	c := cache.Noop{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
