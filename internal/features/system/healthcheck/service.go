package system_healthcheck

import (
	"context"
	"log/slog"
	"time"

	"extlog/internal/downdetect"
	logs_core "extlog/internal/features/logs/core"

	"github.com/shirou/gopsutil/v4/disk"
)

type HealthcheckService struct {
	downdetectService *downdetect.DowndetectService
	logStore          *logs_core.LogStore
	storageBackend    string
	dataPath          string
	startedAt         time.Time
	logger            *slog.Logger
}

func NewHealthcheckService(
	downdetectService *downdetect.DowndetectService,
	logStore *logs_core.LogStore,
	storageBackend string,
	dataPath string,
	logger *slog.Logger,
) *HealthcheckService {
	return &HealthcheckService{
		downdetectService: downdetectService,
		logStore:          logStore,
		storageBackend:    storageBackend,
		dataPath:          dataPath,
		startedAt:         time.Now().UTC(),
		logger:            logger,
	}
}

func (s *HealthcheckService) GetHealth(ctx context.Context) *HealthcheckResponseDTO {
	response := &HealthcheckResponseDTO{
		Status:         StatusHealthy,
		StorageBackend: s.storageBackend,
		LogsCapacity:   s.logStore.Capacity(),
		StartedAt:      s.startedAt,
		UptimeSec:      int64(time.Since(s.startedAt).Seconds()),
	}

	if err := s.downdetectService.IsAvailable(ctx); err != nil {
		response.Status = StatusUnhealthy
		response.StorageError = err.Error()
	}

	if s.dataPath != "" {
		usage, err := disk.UsageWithContext(ctx, s.dataPath)
		if err != nil {
			s.logger.Warn("failed to read disk usage", "path", s.dataPath, "error", err)
		} else {
			response.DiskUsedPercent = &usage.UsedPercent
		}
	}

	return response
}
