package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultKeyPrefix      = "extlog:"
	DefaultStorageTimeout = 10 * time.Second
)

type ValkeyStore struct {
	client  valkey.Client
	prefix  string
	timeout time.Duration
}

func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	return &ValkeyStore{
		client:  client,
		prefix:  prefix,
		timeout: DefaultStorageTimeout,
	}
}

func (s *ValkeyStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	result := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response := s.client.Do(ctx, s.client.B().Mget().Key(s.fullKeys(keys)...).Build())
	if response.Error() != nil {
		return nil, fmt.Errorf("valkey mget failed: %w", response.Error())
	}

	values, err := response.ToArray()
	if err != nil {
		return nil, fmt.Errorf("failed to parse mget reply: %w", err)
	}

	for i, value := range values {
		if i >= len(keys) || value.IsNil() {
			continue
		}

		data, err := value.AsBytes()
		if err != nil {
			return nil, fmt.Errorf("failed to read value of %s: %w", keys[i], err)
		}

		result[keys[i]] = data
	}

	return result, nil
}

func (s *ValkeyStore) Set(ctx context.Context, items map[string][]byte) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := s.client.B().Mset().KeyValue()
	for key, value := range items {
		cmd = cmd.KeyValue(s.prefix+key, string(value))
	}

	if err := s.client.Do(ctx, cmd.Build()).Error(); err != nil {
		return fmt.Errorf("valkey mset failed: %w", err)
	}

	return nil
}

func (s *ValkeyStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Do(ctx, s.client.B().Del().Key(s.fullKeys(keys)...).Build()).Error(); err != nil {
		return fmt.Errorf("valkey del failed: %w", err)
	}

	return nil
}

func (s *ValkeyStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

func (s *ValkeyStore) fullKeys(keys []string) []string {
	fullKeys := make([]string, len(keys))
	for i, key := range keys {
		fullKeys[i] = s.prefix + key
	}
	return fullKeys
}
