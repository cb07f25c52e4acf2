package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisScanBatch = 100

// Redis is a Cache backed by a Redis server. All keys are stored under namespace.
type Redis struct {
	rdb       *redis.Client
	namespace string
}

// NewRedis connects to url (redis://...) and verifies the connection.
func NewRedis(url, namespace string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Redis{rdb: rdb, namespace: namespace}, nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.rdb.Get(ctx, c.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return raw, true, nil
}

func (c *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return c.rdb.Del(ctx, c.namespace+key).Err()
	}
	if err := c.rdb.Set(ctx, c.namespace+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Invalidate deletes matching keys with SCAN so the server is never blocked by KEYS.
func (c *Redis) Invalidate(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, c.namespace+prefix+"*", redisScanBatch).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan %q: %w", prefix, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis invalidate %q: %w", prefix, err)
	}
	return nil
}

// Ping checks connectivity
func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *Redis) Close() error {
	return c.rdb.Close()
}
