// internal/infrastructure/cache/cache.go
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss - ключ отсутствует или истек
var ErrCacheMiss = errors.New("cache miss")

// Cache - кэш ответов с TTL. Значения хранятся в JSON.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
