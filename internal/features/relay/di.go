package relay

import (
	"extlog/internal/config"
	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/features/scanner"
	"extlog/internal/util/logger"
	"extlog/internal/util/rate_limit"
)

var relayService = NewRelayService(
	scanner.GetScannerService(),
	rate_limit.NewRateLimiter(),
	config.GetEnv().RelayRPS,
	logger.GetLogger(),
)

var relayController = &RelayController{
	relayService,
	logs_core.GetLogStore(),
}

func GetRelayService() *RelayService {
	return relayService
}

func GetRelayController() *RelayController {
	return relayController
}
