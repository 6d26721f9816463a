package redis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const subjectPrefix = "subject:"

// RedisSubjectCache remembers user ids that were recently confirmed to exist.
type RedisSubjectCache struct {
	client *redis.Client
}

func NewRedisSubjectCache(client *redis.Client) *RedisSubjectCache {
	return &RedisSubjectCache{client: client}
}

// NewClient builds a client and checks the connection once.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *RedisSubjectCache) Remember(ctx context.Context, id uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, subjectPrefix+id.String(), "1", ttl).Err()
}

func (r *RedisSubjectCache) IsKnown(ctx context.Context, id uuid.UUID) (bool, error) {
	val, err := r.client.Get(ctx, subjectPrefix+id.String()).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	default:
		return val == "1", nil
	}
}

func (r *RedisSubjectCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
