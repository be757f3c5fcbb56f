package logs_stream

import (
	"sync"

	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/util/logger"
)

var hub = NewHub(logger.GetLogger())

var streamController = NewStreamController(hub, logger.GetLogger())

var setupOnce sync.Once

func GetHub() *Hub {
	return hub
}

func GetStreamController() *StreamController {
	return streamController
}

func SetupDependencies() {
	setupOnce.Do(func() {
		logs_core.GetLogStore().AddListener(hub)
	})
}
