package logs_cleanup

import (
	"extlog/internal/config"
	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/util/logger"
)

var logCleanupBackgroundService = NewLogCleanupBackgroundService(
	logs_core.GetLogStore(),
	config.GetEnv().LogsMaxAgeDays,
	logger.GetLogger(),
)

func GetLogCleanupBackgroundService() *LogCleanupBackgroundService {
	return logCleanupBackgroundService
}
