package logs_cleanup

import (
	"context"
	"testing"
	"time"

	"extlog/internal/features/kvstore"
	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/util/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EnforceLogRetention_WhenMaxLifeDaysIsSet_DeletesLogsOlderThanRetentionPeriod(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	ctx := context.Background()

	store.Error(ctx, "old error", nil)
	store.Warn(ctx, "old warning", nil)

	service := NewLogCleanupBackgroundService(store, 7, logger.GetLogger())
	service.now = func() time.Time { return time.Now().AddDate(0, 0, 10) }

	require.NoError(t, service.ExecuteAllTasksForTest())

	assert.Empty(t, store.GetLogs(ctx, logs_core.LogFilter{}).Value)
}

func Test_EnforceLogRetention_RecentLogs_AreKept(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	ctx := context.Background()

	store.Error(ctx, "recent error", nil)

	service := NewLogCleanupBackgroundService(store, 7, logger.GetLogger())
	service.now = func() time.Time { return time.Now().AddDate(0, 0, 5) }

	require.NoError(t, service.ExecuteAllTasksForTest())

	logs := store.GetLogs(ctx, logs_core.LogFilter{}).Value
	require.Len(t, logs, 1)
	assert.Equal(t, "recent error", logs[0].Message)
}

func Test_EnforceLogRetention_WhenDisabled_KeepsEverything(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	ctx := context.Background()

	store.Error(ctx, "ancient error", nil)

	service := NewLogCleanupBackgroundService(store, 0, logger.GetLogger())
	service.now = func() time.Time { return time.Now().AddDate(10, 0, 0) }

	require.NoError(t, service.ExecuteAllTasksForTest())

	assert.Len(t, store.GetLogs(ctx, logs_core.LogFilter{}).Value, 1)
}

func Test_EnforceLogRetention_WhenStorageFails_ReturnsError(t *testing.T) {
	store := logs_core.CreateTestLogStoreWithBackend(kvstore.NewFailingStore(assert.AnError), 100)

	service := NewLogCleanupBackgroundService(store, 1, logger.GetLogger())

	assert.ErrorIs(t, service.ExecuteAllTasksForTest(), assert.AnError)
}

func Test_StartWorkers_ThenStopWorkers_ReturnsPromptly(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := NewLogCleanupBackgroundService(store, 3, logger.GetLogger())

	service.StartWorkers()

	done := make(chan struct{})
	go func() {
		service.StopWorkers()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup worker did not stop")
	}
}
