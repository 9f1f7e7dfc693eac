package repositories

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// noopCacheRepository используется, когда Redis не сконфигурирован.
// Get всегда промахивается, остальные операции ничего не делают:
// приём обращений не должен зависеть от доступности кеша.
type noopCacheRepository struct{}

func NewNoopCacheRepository() CacheRepositoryInterface {
	return &noopCacheRepository{}
}

func (r *noopCacheRepository) Get(ctx context.Context, key string) (string, error) {
	return "", redis.Nil
}

func (r *noopCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (r *noopCacheRepository) Del(ctx context.Context, keys ...string) error {
	return nil
}

func (r *noopCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	return 0, nil
}
