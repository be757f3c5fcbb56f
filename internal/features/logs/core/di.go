package logs_core

import (
	"sync"

	"extlog/internal/config"
	"extlog/internal/features/kvstore"
	"extlog/internal/util/logger"
)

var (
	logStore     *LogStore
	logStoreOnce sync.Once
)

// GetLogStore returns the process-wide store, stamped with the configured
// default origin.
func GetLogStore() *LogStore {
	logStoreOnce.Do(func() {
		env := config.GetEnv()

		logStore = NewLogStore(
			kvstore.GetStore(),
			NewEnvironment(env.DefaultOrigin),
			env.LogsCapacity,
			logger.GetLogger(),
		)
	})

	return logStore
}
