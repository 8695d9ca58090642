package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisClient[T any] struct {
	redis  *redis.Client
	prefix string
}

// NewRedisClient stores JSON encoded values under prefix+key.
func NewRedisClient[T any](rdb *redis.Client, prefix string) Client[T] {
	return &redisClient[T]{redis: rdb, prefix: prefix}
}

func (r redisClient[T]) Get(ctx context.Context, key string) (result T, err error) {
	val, err := r.redis.Get(ctx, r.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return result, ErrNotExists
		}
		return result, err
	}

	if err = json.Unmarshal([]byte(val), &result); err != nil {
		return result, fmt.Errorf("%w: %v", ErrInvalidType, err)
	}

	return result, nil
}

func (r redisClient[T]) Set(ctx context.Context, key string, object T, ttl time.Duration) error {
	val, err := json.Marshal(object)
	if err != nil {
		return err
	}

	if ttl < 0 {
		ttl = 0
	}
	return r.redis.Set(ctx, r.prefix+key, val, ttl).Err()
}

func (r redisClient[T]) Delete(ctx context.Context, key string) error {
	return r.redis.Del(ctx, r.prefix+key).Err()
}

func (r redisClient[T]) GetOrSet(ctx context.Context, opts GetOrSetOpts[T]) (T, error) {
	return getOrSet[T](ctx, r, opts)
}
