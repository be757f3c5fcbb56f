package logs_cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"extlog/internal/config"
	logs_core "extlog/internal/features/logs/core"
)

const retentionCleanupInterval = 1 * time.Minute

// LogCleanupBackgroundService drops entries older than the retention period.
// Capacity eviction happens on every write regardless.
type LogCleanupBackgroundService struct {
	logStore    *logs_core.LogStore
	maxLifeDays int
	logger      *slog.Logger
	now         func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewLogCleanupBackgroundService(
	logStore *logs_core.LogStore,
	maxLifeDays int,
	logger *slog.Logger,
) *LogCleanupBackgroundService {
	return &LogCleanupBackgroundService{
		logStore:    logStore,
		maxLifeDays: maxLifeDays,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *LogCleanupBackgroundService) StartWorkers() {
	if s.maxLifeDays <= 0 {
		s.logger.Info("Log retention is disabled, cleanup worker not started")
		return
	}

	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("Starting log cleanup background worker",
		slog.Duration("retentionInterval", retentionCleanupInterval),
		slog.Int("maxLifeDays", s.maxLifeDays))

	s.wg.Add(1)
	go s.retentionWorker()
}

// StopWorkers cancels the worker and waits for the running pass to finish.
func (s *LogCleanupBackgroundService) StopWorkers() {
	if s.cancel == nil {
		return
	}

	s.cancel()
	s.wg.Wait()
}

func (s *LogCleanupBackgroundService) ExecuteAllTasksForTest() error {
	return s.enforceLogRetention(context.Background())
}

func (s *LogCleanupBackgroundService) retentionWorker() {
	defer s.wg.Done()

	ticker := time.NewTicker(retentionCleanupInterval)
	defer ticker.Stop()

	for {
		if config.IsShouldShutdown() {
			s.logger.Info("Retention cleanup worker shutting down due to shutdown signal")
			return
		}

		select {
		case <-s.ctx.Done():
			s.logger.Info("Retention cleanup worker shutting down")
			return

		case <-ticker.C:
			if err := s.enforceLogRetention(s.ctx); err != nil {
				s.logger.Error("Error during retention cleanup", slog.String("error", err.Error()))
			}
		}
	}
}

func (s *LogCleanupBackgroundService) enforceLogRetention(ctx context.Context) error {
	if s.maxLifeDays <= 0 {
		return nil
	}

	cutoffTime := s.now().UTC().AddDate(0, 0, -s.maxLifeDays)

	result := s.logStore.DeleteOldLogs(ctx, cutoffTime)
	if result.Err != nil {
		return fmt.Errorf("failed to delete old logs: %w", result.Err)
	}

	if result.Value > 0 {
		s.logger.Info("Retention cleanup completed",
			slog.Int("deletedLogs", result.Value),
			slog.Time("cutoff", cutoffTime))
	}

	return nil
}
