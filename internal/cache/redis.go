package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDialTimeout = 5 * time.Second

// RedisCache is a Redis-backed implementation of ProductCache, for
// deployments where several client processes share one product cache.
// It is best-effort: Redis failures degrade to cache misses and are
// logged, never propagated, because a missing entry only costs one
// conditional fetch.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisCacheConfig holds configuration for the Redis product cache.
type RedisCacheConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// NewRedisCache creates a Redis-backed product cache.
func NewRedisCache(cfg RedisCacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	keyPrefix := cfg.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = "storefront:products"
	}

	return &RedisCache{client: client, keyPrefix: keyPrefix}, nil
}

func (c *RedisCache) key(id string) string {
	return c.keyPrefix + ":" + id
}

// Get retrieves the entry for a product id.
func (c *RedisCache) Get(ctx context.Context, id string) (Entry, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[RedisCache] Get %s failed: %v", id, err)
		}
		return Entry{}, false
	}

	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		log.Printf("[RedisCache] Corrupt entry for %s: %v", id, err)
		return Entry{}, false
	}
	return e, true
}

// Set stores the entry for a product id.
func (c *RedisCache) Set(ctx context.Context, id string, e Entry) {
	raw, err := json.Marshal(e)
	if err != nil {
		log.Printf("[RedisCache] Encode entry for %s failed: %v", id, err)
		return
	}

	if err := c.client.Set(ctx, c.key(id), raw, 0).Err(); err != nil {
		log.Printf("[RedisCache] Set %s failed: %v", id, err)
	}
}

// Delete removes the entry for a product id.
func (c *RedisCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, c.key(id)).Err(); err != nil {
		log.Printf("[RedisCache] Delete %s failed: %v", id, err)
	}
}

// Close closes the underlying Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements ProductCache
var _ ProductCache = (*RedisCache)(nil)
