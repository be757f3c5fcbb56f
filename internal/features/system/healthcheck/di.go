package system_healthcheck

import (
	"extlog/internal/config"
	"extlog/internal/downdetect"
	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/util/logger"
)

var healthcheckService = NewHealthcheckService(
	downdetect.GetDowndetectService(),
	logs_core.GetLogStore(),
	config.GetEnv().StorageBackend,
	config.GetEnv().BackendRootPath,
	logger.GetLogger(),
)

var healthcheckController = &HealthcheckController{
	healthcheckService,
}

func GetHealthcheckController() *HealthcheckController {
	return healthcheckController
}
