package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const redisKeyPrefix = "recipify:llm:"

// RedisCache shares cached model responses between service replicas.
// Redis failures are logged and treated as misses.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
	logger zerolog.Logger
}

var _ ResponseCache = (*RedisCache)(nil)

// NewRedisCache creates a Redis-backed ResponseCache
func NewRedisCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

func (c *RedisCache) get(ctx context.Context, key string) (string, bool) {
	v, err := c.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to read cached response")
		return "", false
	}
	return v, true
}

// GetOrCompute returns the cached value for key or computes and stores it
func (c *RedisCache) GetOrCompute(ctx context.Context, key string, compute ComputeFunc) (string, bool, error) {
	if v, ok := c.get(ctx, key); ok {
		return v, true, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		if v, ok := c.get(detached, key); ok {
			return flightResult{value: v, cached: true}, nil
		}
		v, err := compute(detached)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(detached, redisKeyPrefix+key, v, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache response")
		}
		return flightResult{value: v}, nil
	})
	return await(ctx, ch)
}
