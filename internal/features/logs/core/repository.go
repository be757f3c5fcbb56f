package logs_core

import (
	"context"
	"encoding/json"
	"fmt"

	"extlog/internal/features/kvstore"
)

const (
	logsStorageKey  = "extensionLogs"
	levelStorageKey = "logLevel"
)

// LogRepository maps the log stream onto two keys of the storage area: the
// threshold name and the whole bounded entry sequence as one JSON array.
type LogRepository struct {
	store kvstore.Store
}

func NewLogRepository(store kvstore.Store) *LogRepository {
	return &LogRepository{store: store}
}

func (repository *LogRepository) IsAvailable() bool {
	return repository != nil && kvstore.IsAvailable(repository.store)
}

func (repository *LogRepository) ReadEntries(ctx context.Context) ([]*LogEntry, error) {
	if !repository.IsAvailable() {
		return nil, kvstore.ErrStorageUnavailable
	}

	values, err := repository.store.Get(ctx, logsStorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read logs: %w", err)
	}

	raw, ok := values[logsStorageKey]
	if !ok || len(raw) == 0 {
		return []*LogEntry{}, nil
	}

	entries := make([]*LogEntry, 0)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode stored logs: %w", err)
	}

	return entries, nil
}

func (repository *LogRepository) WriteEntries(ctx context.Context, entries []*LogEntry) error {
	if !repository.IsAvailable() {
		return kvstore.ErrStorageUnavailable
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode logs: %w", err)
	}

	if err := repository.store.Set(ctx, map[string][]byte{logsStorageKey: raw}); err != nil {
		return fmt.Errorf("failed to write logs: %w", err)
	}

	return nil
}

func (repository *LogRepository) RemoveEntries(ctx context.Context) error {
	if !repository.IsAvailable() {
		return kvstore.ErrStorageUnavailable
	}

	if err := repository.store.Remove(ctx, logsStorageKey); err != nil {
		return fmt.Errorf("failed to clear logs: %w", err)
	}

	return nil
}

// ReadLevel returns found=false when no threshold was ever persisted or the
// persisted value is not a recognised level.
func (repository *LogRepository) ReadLevel(ctx context.Context) (LogLevel, bool, error) {
	if !repository.IsAvailable() {
		return "", false, kvstore.ErrStorageUnavailable
	}

	values, err := repository.store.Get(ctx, levelStorageKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to read log level: %w", err)
	}

	raw, ok := values[levelStorageKey]
	if !ok {
		return "", false, nil
	}

	level, ok := ParseLogLevel(string(raw))
	if !ok {
		return "", false, nil
	}

	return level, true, nil
}

func (repository *LogRepository) WriteLevel(ctx context.Context, level LogLevel) error {
	if !repository.IsAvailable() {
		return kvstore.ErrStorageUnavailable
	}

	if err := repository.store.Set(ctx, map[string][]byte{levelStorageKey: []byte(level)}); err != nil {
		return fmt.Errorf("failed to write log level: %w", err)
	}

	return nil
}

func (repository *LogRepository) Ping(ctx context.Context) error {
	if !repository.IsAvailable() {
		return kvstore.ErrStorageUnavailable
	}

	return repository.store.Ping(ctx)
}
