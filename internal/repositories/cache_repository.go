package repositories

import (
	"context"
	"time"
)

// CacheRepositoryInterface - кеш административной витрины.
// Incr обслуживает счётчик версии списка обращений.
type CacheRepositoryInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Incr(ctx context.Context, key string) (int64, error)
}
