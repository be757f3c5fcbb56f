package system_healthcheck

import "time"

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type HealthcheckResponseDTO struct {
	Status         string    `json:"status"`
	StorageBackend string    `json:"storageBackend"`
	StorageError   string    `json:"storageError,omitempty"`
	LogsCapacity   int       `json:"logsCapacity"`
	StartedAt      time.Time `json:"startedAt"`
	UptimeSec      int64     `json:"uptimeSec"`
	// percent of the data directory's filesystem in use, absent when unknown
	DiskUsedPercent *float64 `json:"diskUsedPercent,omitempty"`
}
