package repository

import (
	"context"
	"time"
)

// ダッシュボード結果のキャッシュ
type Cache interface {
	// 無ければ ok=false
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
