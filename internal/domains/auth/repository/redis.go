package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"library-backend/internal/domains/auth"
)

// redisRepository implements auth.TokenRepository on a shared redis
// client. Expiry is delegated to redis TTLs.
type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) auth.TokenRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Add(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	return nil
}

func (r *redisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read credential: %w", err)
	}
	return value, true, nil
}

func (r *redisRepository) Revoke(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("revoke credential: %w", err)
	}
	return nil
}
