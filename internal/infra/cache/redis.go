package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Lucas16AR/stock-app/internal/config"
	repo "github.com/Lucas16AR/stock-app/internal/repository"

	"github.com/redis/go-redis/v9"
)

var (
	_ repo.Cache = (*RedisCache)(nil)
	_ repo.Cache = Nop{}
)

type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// DI
func NewRedisCache(rdb *redis.Client, prefix string) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix}
}

func (c *RedisCache) k(key string) string {
	return c.prefix + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, c.k(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, c.k(key), value, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.k(k))
	}
	return c.rdb.Del(ctx, full...).Err()
}

// キャッシュ無効時
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error                  { return nil }

// Nop なら 0（キャッシュを引かない）
func TTL(c repo.Cache, ttl time.Duration) time.Duration {
	if _, ok := c.(Nop); ok {
		return 0
	}
	return ttl
}

// REDIS_ADDR が空なら Nop。closeは終了時に呼ぶ
func New(ctx context.Context, cfg config.Config) (repo.Cache, func() error, error) {
	if cfg.RedisAddr == "" {
		return Nop{}, func() error { return nil }, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return NewRedisCache(rdb, "stock-app:"), rdb.Close, nil
}
