package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the record in a single Redis string key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore creates a Redis-backed store under key.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	return nil
}
