package kvstore

import (
	"context"
	"errors"
)

// ErrStorageUnavailable is returned when no backend exists in the current
// execution context. Callers treat it as a silent no-op.
var ErrStorageUnavailable = errors.New("storage is unavailable")

// Store is the durable key-value contract of the extension storage area.
// Every call is atomic on its own; there is no transaction across calls.
type Store interface {
	// Get returns the subset of keys that exist. Missing keys are absent from the map.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, items map[string][]byte) error
	Remove(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
}

// IsAvailable reports whether store can be used at all.
func IsAvailable(store Store) bool {
	return store != nil
}
