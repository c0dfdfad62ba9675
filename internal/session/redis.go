package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisSessionKey = "current_user"

	// Durable sessions eventually expire server-side even if the
	// client never signs out.
	redisSessionTTL = 30 * 24 * time.Hour
)

// RedisStore is a durable session slot backed by Redis, for
// deployments where the backend itself is restarted or replicated.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr, password string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.rdb.Get(ctx, redisSessionKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	return s.rdb.Set(ctx, redisSessionKey, data, redisSessionTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, redisSessionKey).Err()
}
