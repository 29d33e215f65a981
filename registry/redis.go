package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "refresh:"

var _ Registry = (*RedisRegistry)(nil)

// RedisRegistry stores registered refresh tokens as Redis keys so the set
// survives process restarts. Keys carry a TTL matching the refresh token
// lifetime, so abandoned entries age out on their own.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRegistry(client *redis.Client, refreshTTL time.Duration) *RedisRegistry {
	return &RedisRegistry{
		client: client,
		ttl:    refreshTTL,
	}
}

func (r *RedisRegistry) Add(ctx context.Context, refreshToken string) error {
	if err := r.client.Set(ctx, redisKeyPrefix+refreshToken, "1", r.ttl).Err(); err != nil {
		return fmt.Errorf("RedisRegistry.Add: %w", err)
	}
	return nil
}

func (r *RedisRegistry) Has(ctx context.Context, refreshToken string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKeyPrefix+refreshToken).Result()
	if err != nil {
		return false, fmt.Errorf("RedisRegistry.Has: %w", err)
	}
	return n > 0, nil
}

func (r *RedisRegistry) Remove(ctx context.Context, refreshToken string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+refreshToken).Err(); err != nil {
		return fmt.Errorf("RedisRegistry.Remove: %w", err)
	}
	return nil
}
