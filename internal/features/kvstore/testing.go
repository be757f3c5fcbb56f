package kvstore

import (
	"context"
	"sync/atomic"
)

// FailingStore rejects every call with err. Used to exercise the
// failure-absorbing paths of callers.
type FailingStore struct {
	err   error
	calls atomic.Int64
}

func NewFailingStore(err error) *FailingStore {
	return &FailingStore{err: err}
}

func (s *FailingStore) Get(_ context.Context, _ ...string) (map[string][]byte, error) {
	s.calls.Add(1)
	return nil, s.err
}

func (s *FailingStore) Set(_ context.Context, _ map[string][]byte) error {
	s.calls.Add(1)
	return s.err
}

func (s *FailingStore) Remove(_ context.Context, _ ...string) error {
	s.calls.Add(1)
	return s.err
}

func (s *FailingStore) Ping(_ context.Context) error {
	return s.err
}

func (s *FailingStore) Calls() int64 {
	return s.calls.Load()
}
