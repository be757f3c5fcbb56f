package logs_metrics

import (
	"sync"

	logs_core "extlog/internal/features/logs/core"

	"github.com/prometheus/client_golang/prometheus"
)

var logMetrics = NewLogMetrics(prometheus.DefaultRegisterer)

var metricsController = &MetricsController{
	prometheus.DefaultGatherer,
}

var setupOnce sync.Once

func GetLogMetrics() *LogMetrics {
	return logMetrics
}

func GetMetricsController() *MetricsController {
	return metricsController
}

func SetupDependencies() {
	setupOnce.Do(func() {
		logs_core.GetLogStore().AddListener(logMetrics)
	})
}
