package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nimbusdesk/nimbusdesk/pkg/cache"
	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
)

func TestNewStore_MemoryBackend(t *testing.T) {
	memStore, err := cache.NewStore(configuration.CacheOptions{
		Storage:    configuration.CacheStorageMemory,
		TTLSeconds: 1,
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, memStore.Set(ctx, "testing", "tested"))

	result, err := memStore.Get(ctx, "testing")
	require.NoError(t, err)
	require.Equal(t, "tested", result)

	time.Sleep(1100 * time.Millisecond)
	_, err = memStore.Get(ctx, "testing")
	require.Error(t, err, "value should have expired")
}

func TestNewStore_UnknownBackendFailsFast(t *testing.T) {
	_, err := cache.NewStore(configuration.CacheOptions{
		Storage:    "memcached",
		TTLSeconds: 60,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "must be 'memory' or 'redis'")
}

func TestNewStore_RedisWithoutURLFailsFast(t *testing.T) {
	_, err := cache.NewStore(configuration.CacheOptions{
		Storage:    configuration.CacheStorageRedis,
		TTLSeconds: 60,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "RedisURL is required")
}

func TestNewStore_RedisWithInvalidURLFailsFast(t *testing.T) {
	_, err := cache.NewStore(configuration.CacheOptions{
		Storage:    configuration.CacheStorageRedis,
		TTLSeconds: 60,
		RedisURL:   "not-a-url",
	})
	require.Error(t, err)
}
