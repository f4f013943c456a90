package cache

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/store"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	redis_store "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nimbusdesk/nimbusdesk/pkg/configuration"
)

const redisDialTimeout = 2 * time.Second

// NewStore provisions the cache backend selected by configuration. Misconfigured
// backends (unknown kind, redis without a connection string, unreachable redis)
// are startup errors and abort boot.
func NewStore(opts configuration.CacheOptions) (store.StoreInterface, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch opts.Storage {
	case configuration.CacheStorageRedis:
		return newRedisStore(opts)
	default:
		goc := gocache.New(opts.TTL(), 2*opts.TTL())
		return gocache_store.NewGoCache(goc, store.WithExpiration(opts.TTL())), nil
	}
}

func newRedisStore(opts configuration.CacheOptions) (store.StoreInterface, error) {
	options, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing redis cache url")
	}

	client := redis.NewClient(options)
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "connecting to redis cache")
	}

	return redis_store.NewRedis(client, store.WithExpiration(opts.TTL())), nil
}
