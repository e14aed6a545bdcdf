package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores JSON documents under string keys with a TTL.
type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "stayledger:"}
}

// Get decodes the value under key into dest. A miss returns false and no error.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errs.Wrapf(err, "redis get %s", key)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, errs.Wrapf(err, "decode cached %s", key)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errs.Wrapf(err, "encode %s", key)
	}
	if err := c.client.Set(ctx, c.prefix+key, raw, ttl).Err(); err != nil {
		return errs.Wrapf(err, "redis set %s", key)
	}
	return nil
}
