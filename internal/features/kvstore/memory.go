package kvstore

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, keys ...string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := s.items[key]; ok {
			result[key] = cloneBytes(value)
		}
	}

	return result, nil
}

func (s *MemoryStore) Set(_ context.Context, items map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range items {
		s.items[key] = cloneBytes(value)
	}

	return nil
}

func (s *MemoryStore) Remove(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.items, key)
	}

	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}

	cloned := make([]byte, len(value))
	copy(cloned, value)
	return cloned
}
