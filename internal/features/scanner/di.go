package scanner

import (
	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/util/logger"
)

var scannerService = NewScannerService(logs_core.GetLogStore(), logger.GetLogger())

func GetScannerService() *ScannerService {
	return scannerService
}

var scannerController = &ScannerController{
	scannerService,
}

func GetScannerController() *ScannerController {
	return scannerController
}
