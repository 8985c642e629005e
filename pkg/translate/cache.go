package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"

	"github.com/redis/go-redis/v9"
)

// Cache stores finished translations.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

func CacheKey(text string, target locale.Language, source string) string {
	if source == "" {
		source = "auto"
	}
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf("translate:%s:%s:%s", target.ProviderCode(), source, hex.EncodeToString(sum[:]))
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, c.ttl).Err()
}
