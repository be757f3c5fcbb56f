package logs_api

import (
	logs_core "extlog/internal/features/logs/core"
)

const (
	ErrorInvalidLogLevel     = "INVALID_LOG_LEVEL"
	ErrorInvalidLimit        = "INVALID_LIMIT"
	ErrorInvalidExportFormat = "INVALID_EXPORT_FORMAT"
	ErrorInvalidSince        = "INVALID_SINCE"
	ErrorLogTooLarge         = "LOG_TOO_LARGE"
	ErrorStorageFailure      = "STORAGE_FAILURE"

	ErrorTooManyConcurrentExports = "TOO_MANY_CONCURRENT_EXPORTS"
)

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type CreateLogRequestDTO struct {
	Level   logs_core.LogLevel `json:"level"             binding:"required"`
	Message string             `json:"message"           binding:"required,max=10000"`
	Data    any                `json:"data,omitempty"`
	Context string             `json:"context,omitempty" binding:"max=100"`
}

type CreateLogResponseDTO struct {
	Stored bool                `json:"stored"`
	Entry  *logs_core.LogEntry `json:"entry,omitempty"`
}

type GetLogsResponseDTO struct {
	Logs []*logs_core.LogEntry `json:"logs"`
}

type LogLevelDTO struct {
	Level logs_core.LogLevel `json:"level" binding:"required"`
}
