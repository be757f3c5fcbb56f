package kvstore

import (
	"context"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client:  client,
		prefix:  prefix,
		timeout: DefaultStorageTimeout,
	}
}

func (s *RedisStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.prefix + key
	}

	values, err := s.client.MGet(ctx, fullKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget failed: %w", err)
	}

	for i, value := range values {
		if i >= len(keys) || value == nil {
			continue
		}

		switch v := value.(type) {
		case string:
			result[keys[i]] = []byte(v)
		case []byte:
			result[keys[i]] = v
		default:
			return nil, fmt.Errorf("unexpected redis value type %T for %s", value, keys[i])
		}
	}

	return result, nil
}

func (s *RedisStore) Set(ctx context.Context, items map[string][]byte) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	values := make(map[string]any, len(items))
	for key, value := range items {
		values[s.prefix+key] = value
	}

	if err := s.client.MSet(ctx, values).Err(); err != nil {
		return fmt.Errorf("redis mset failed: %w", err)
	}

	return nil
}

func (s *RedisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.prefix + key
	}

	if err := s.client.Del(ctx, fullKeys...).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}

	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.Ping(ctx).Err()
}
