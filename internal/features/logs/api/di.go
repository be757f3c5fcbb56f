package logs_api

import (
	logs_core "extlog/internal/features/logs/core"
)

var logsController = &LogsController{
	logs_core.GetLogStore(),
	&LogsValidator{},
	NewExportLimiter(maxConcurrentExports),
}

func GetLogsController() *LogsController {
	return logsController
}
