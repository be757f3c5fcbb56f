package logs_api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	logs_core "extlog/internal/features/logs/core"
	time_parser "extlog/internal/util/time"
)

const (
	MaxLogDataSizeKB = 64
	maxLogDataBytes  = MaxLogDataSizeKB * 1024
)

type LogsValidator struct{}

func (v *LogsValidator) ValidateCreateLog(request *CreateLogRequestDTO) error {
	if request.Data == nil {
		return nil
	}

	data, err := json.Marshal(request.Data)
	if err != nil {
		return &ValidationError{
			Code:    ErrorLogTooLarge,
			Message: "data is not serialisable",
		}
	}

	if len(data) > maxLogDataBytes {
		return &ValidationError{
			Code:    ErrorLogTooLarge,
			Message: fmt.Sprintf("data exceeds %d KB", MaxLogDataSizeKB),
		}
	}

	return nil
}

// ParseLimit returns 0 for an absent limit so the store applies its default.
func (v *LogsValidator) ParseLimit(raw string, capacity int) (int, error) {
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, &ValidationError{
			Code:    ErrorInvalidLimit,
			Message: "limit must be a non-negative integer",
		}
	}

	return min(limit, capacity), nil
}

func (v *LogsValidator) ParseSince(raw string) (time.Time, error) {
	since, err := time_parser.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, &ValidationError{
			Code:    ErrorInvalidSince,
			Message: "since must be an ISO 8601 timestamp or a unix epoch",
		}
	}

	return since, nil
}

func (v *LogsValidator) ParseLevel(raw string) (logs_core.LogLevel, error) {
	level, ok := logs_core.ParseLogLevel(raw)
	if !ok {
		return "", &ValidationError{
			Code:    ErrorInvalidLogLevel,
			Message: "level must be one of ERROR, WARN, INFO, DEBUG",
		}
	}

	return level, nil
}

func (v *LogsValidator) ParseExportFormat(raw string) (logs_core.ExportFormat, error) {
	if raw == "" {
		return logs_core.ExportFormatJSON, nil
	}

	format := logs_core.ExportFormat(raw)
	if !format.IsValid() {
		return "", &ValidationError{
			Code:    ErrorInvalidExportFormat,
			Message: "format must be json or yaml",
		}
	}

	return format, nil
}
