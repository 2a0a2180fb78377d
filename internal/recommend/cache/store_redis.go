package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for cached recommendation responses.
const redisKeyPrefix = "reco:"

// RedisCache is a Redis-backed response cache. This is the recommended
// implementation when multiple instances should share cached responses;
// TTL handling is delegated to Redis key expiry.
type RedisCache struct {
	client *redis.Client
}

// NewRedis constructs a Redis-backed response cache. The client
// lifecycle is managed externally.
func NewRedis(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return payload, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, redisKeyPrefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Purge deletes every cached response. Uses SCAN rather than KEYS to
// avoid blocking Redis on large keyspaces.
func (c *RedisCache) Purge(ctx context.Context) (int, error) {
	deleted := 0
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("cache purge: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("cache purge scan: %w", err)
	}
	return deleted, nil
}

func (c *RedisCache) Len(ctx context.Context) (int, error) {
	count := 0
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("cache len scan: %w", err)
	}
	return count, nil
}
