package logs_core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"extlog/internal/features/kvstore"

	"golang.org/x/sync/singleflight"
)

const DefaultCapacity = 1000

// logStream is the state shared by every view of one log store: one
// storage area, one threshold, one bounded sequence.
type logStream struct {
	repository *LogRepository
	capacity   int
	logger     *slog.Logger
	now        func() time.Time

	// serialises read-modify-write of the entry sequence inside this process
	writeMutex sync.Mutex

	levelMutex  sync.RWMutex
	level       LogLevel
	levelLoaded bool
	levelLoad   singleflight.Group

	listenersMutex sync.RWMutex
	listeners      []LogListener
}

type LogStore struct {
	stream      *logStream
	environment Environment
}

func NewLogStore(
	store kvstore.Store,
	environment Environment,
	capacity int,
	logger *slog.Logger,
) *LogStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LogStore{
		stream: &logStream{
			repository: NewLogRepository(store),
			capacity:   capacity,
			logger:     logger,
			now:        time.Now,
			level:      DefaultLogLevel,
		},
		environment: environment,
	}
}

// WithEnvironment returns a view writing into the same stream but stamping
// entries with another origin and agent descriptor.
func (s *LogStore) WithEnvironment(environment Environment) *LogStore {
	return &LogStore{
		stream:      s.stream,
		environment: environment,
	}
}

func (s *LogStore) Environment() Environment {
	return s.environment
}

func (s *LogStore) Capacity() int {
	return s.stream.capacity
}

func (s *LogStore) AddListener(listener LogListener) {
	if listener == nil {
		return
	}

	s.stream.listenersMutex.Lock()
	defer s.stream.listenersMutex.Unlock()

	s.stream.listeners = append(s.stream.listeners, listener)
}

func (s *LogStore) Ping(ctx context.Context) error {
	return s.stream.repository.Ping(ctx)
}

// GetLevel returns the current threshold, loading the persisted one on first use.
func (s *LogStore) GetLevel(ctx context.Context) LogLevel {
	stream := s.stream

	stream.levelMutex.RLock()
	if stream.levelLoaded {
		level := stream.level
		stream.levelMutex.RUnlock()
		return level
	}
	stream.levelMutex.RUnlock()

	result, _, _ := stream.levelLoad.Do(levelStorageKey, func() (any, error) {
		level, found, err := stream.repository.ReadLevel(ctx)
		if err != nil {
			s.reportStorageError("read log level", err)

			// keep levelLoaded false so the next call retries the read
			stream.levelMutex.RLock()
			defer stream.levelMutex.RUnlock()
			return stream.level, nil
		}

		stream.levelMutex.Lock()
		defer stream.levelMutex.Unlock()

		// a SetLevel that raced with the read wins
		if !stream.levelLoaded {
			if found {
				stream.level = level
			}
			stream.levelLoaded = true
		}

		return stream.level, nil
	})

	level, ok := result.(LogLevel)
	if !ok {
		return DefaultLogLevel
	}

	return level
}

// SetLevel changes and persists the threshold. Unrecognised names are ignored
// and leave the current threshold untouched.
func (s *LogStore) SetLevel(ctx context.Context, levelName string) Result[LogLevel] {
	level, ok := ParseLogLevel(levelName)
	if !ok {
		return okResult(s.GetLevel(ctx))
	}

	s.stream.levelMutex.Lock()
	s.stream.level = level
	s.stream.levelLoaded = true
	s.stream.levelMutex.Unlock()

	if err := s.stream.repository.WriteLevel(ctx, level); err != nil {
		s.reportStorageError("write log level", err)
		return failedResult(level, err)
	}

	return okResult(level)
}

// Log records one entry. A nil Value with a nil Err means the entry was
// filtered out by the threshold or carried an unrecognised level.
func (s *LogStore) Log(
	ctx context.Context,
	levelName LogLevel,
	message string,
	data any,
	logContext string,
) Result[*LogEntry] {
	level, ok := ParseLogLevel(string(levelName))
	if !ok {
		s.notifyRejected(levelName, RejectReasonUnknownLevel)
		return okResult[*LogEntry](nil)
	}

	if !s.GetLevel(ctx).Accepts(level) {
		s.notifyRejected(level, RejectReasonThreshold)
		return okResult[*LogEntry](nil)
	}

	if !s.stream.repository.IsAvailable() {
		s.notifyRejected(level, RejectReasonStorageUnavailable)
		return failedResult[*LogEntry](nil, kvstore.ErrStorageUnavailable)
	}

	entry := &LogEntry{
		Level:     level,
		Message:   message,
		Data:      s.snapshotData(data),
		Context:   logContext,
		Origin:    s.environment.Origin,
		AgentInfo: s.environment.AgentInfo,
	}

	if err := s.appendEntry(ctx, entry); err != nil {
		s.reportStorageError("append log entry", err)
		s.notifyRejected(level, RejectReasonStorageFailure)
		return failedResult[*LogEntry](nil, err)
	}

	s.notifyStored(entry)

	return okResult(entry)
}

// GetLogs returns up to filter.Limit entries, newest first.
func (s *LogStore) GetLogs(ctx context.Context, filter LogFilter) Result[[]*LogEntry] {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLogsLimit
	}

	var level LogLevel
	if filter.Level != "" {
		parsed, ok := ParseLogLevel(string(filter.Level))
		if !ok {
			return okResult([]*LogEntry{})
		}
		level = parsed
	}

	entries, err := s.stream.repository.ReadEntries(ctx)
	if err != nil {
		s.reportStorageError("read logs", err)
		return failedResult([]*LogEntry{}, err)
	}

	logs := make([]*LogEntry, 0, min(limit, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(logs) < limit; i-- {
		if level != "" && entries[i].Level != level {
			continue
		}
		if !filter.Since.IsZero() && entries[i].Timestamp.Before(filter.Since) {
			continue
		}
		logs = append(logs, entries[i])
	}

	return okResult(logs)
}

func (s *LogStore) ClearLogs(ctx context.Context) Result[bool] {
	s.stream.writeMutex.Lock()
	defer s.stream.writeMutex.Unlock()

	if err := s.stream.repository.RemoveEntries(ctx); err != nil {
		s.reportStorageError("clear logs", err)
		return failedResult(false, err)
	}

	return okResult(true)
}

// DeleteOldLogs removes entries stamped before cutoff and returns how many
// were removed. Entries are time-ordered, so the survivors are a suffix.
func (s *LogStore) DeleteOldLogs(ctx context.Context, cutoff time.Time) Result[int] {
	s.stream.writeMutex.Lock()
	defer s.stream.writeMutex.Unlock()

	entries, err := s.stream.repository.ReadEntries(ctx)
	if err != nil {
		s.reportStorageError("delete old logs", err)
		return failedResult(0, err)
	}

	keepFrom := sort.Search(len(entries), func(i int) bool {
		return !entries[i].Timestamp.Before(cutoff)
	})
	if keepFrom == 0 {
		return okResult(0)
	}

	if err := s.stream.repository.WriteEntries(ctx, entries[keepFrom:]); err != nil {
		s.reportStorageError("delete old logs", err)
		return failedResult(0, err)
	}

	return okResult(keepFrom)
}

func (s *LogStore) appendEntry(ctx context.Context, entry *LogEntry) error {
	stream := s.stream

	stream.writeMutex.Lock()
	defer stream.writeMutex.Unlock()

	entries, err := stream.repository.ReadEntries(ctx)
	if err != nil {
		return err
	}

	entry.Timestamp = stream.now().UTC()
	if len(entries) > 0 {
		last := entries[len(entries)-1].Timestamp
		if entry.Timestamp.Before(last) {
			entry.Timestamp = last
		}
	}

	entries = append(entries, entry)
	if len(entries) > stream.capacity {
		entries = entries[len(entries)-stream.capacity:]
	}

	return stream.repository.WriteEntries(ctx, entries)
}

// snapshotData detaches the payload from the caller by round-tripping it
// through JSON, so the stored and the returned entry carry the same value.
func (s *LogStore) snapshotData(data any) any {
	if data == nil {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		s.stream.logger.Warn("log data is not serialisable, storing its text form", "error", err)
		return fmt.Sprintf("%+v", data)
	}

	var snapshot any
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return string(raw)
	}

	return snapshot
}

func (s *LogStore) reportStorageError(operation string, err error) {
	if errors.Is(err, kvstore.ErrStorageUnavailable) {
		return
	}

	s.stream.logger.Error("log store operation failed",
		slog.String("operation", operation),
		slog.String("error", err.Error()))
}

func (s *LogStore) notifyStored(entry *LogEntry) {
	for _, listener := range s.snapshotListeners() {
		listener.OnLogStored(entry)
	}
}

func (s *LogStore) notifyRejected(level LogLevel, reason RejectReason) {
	for _, listener := range s.snapshotListeners() {
		listener.OnLogRejected(level, reason)
	}
}

func (s *LogStore) snapshotListeners() []LogListener {
	s.stream.listenersMutex.RLock()
	defer s.stream.listenersMutex.RUnlock()

	listeners := make([]LogListener, len(s.stream.listeners))
	copy(listeners, s.stream.listeners)
	return listeners
}
