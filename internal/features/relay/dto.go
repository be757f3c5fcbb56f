package relay

import (
	"encoding/json"
	"time"

	logs_core "extlog/internal/features/logs/core"
)

type RelayRequestDTO struct {
	// generated when absent
	RequestID string          `json:"requestId,omitempty"`
	Action    RelayAction     `json:"action"              binding:"required"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

type RelayResponseDTO struct {
	RequestID string `json:"requestId"`
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
}

type LogPayload struct {
	Level   logs_core.LogLevel `json:"level"`
	Message string             `json:"message"`
	Data    any                `json:"data,omitempty"`
	Context string             `json:"context,omitempty"`
}

type GetLogsPayload struct {
	Level logs_core.LogLevel `json:"level,omitempty"`
	Since time.Time          `json:"since,omitempty"`
	Limit int                `json:"limit,omitempty"`
}

type ExportLogsPayload struct {
	Format logs_core.ExportFormat `json:"format,omitempty"`
}

type SetLevelPayload struct {
	Level string `json:"level"`
}

type UserActionPayload struct {
	Action  string `json:"action"`
	Details any    `json:"details,omitempty"`
}

type SystemEventPayload struct {
	Event   string `json:"event"`
	Details any    `json:"details,omitempty"`
}

type APICallPayload struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Status int    `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type PlatformAPIPayload struct {
	API     string `json:"api"`
	Method  string `json:"method"`
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
}

type ScrapingProgressPayload struct {
	Stage string `json:"stage"`
	Data  any    `json:"data,omitempty"`
}

type OnboardingStepPayload struct {
	Step string `json:"step"`
	Data any    `json:"data,omitempty"`
}

type ScanPagePayload struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

type LogResultDTO struct {
	Stored bool                `json:"stored"`
	Entry  *logs_core.LogEntry `json:"entry,omitempty"`
}

type PingResultDTO struct {
	Pong bool      `json:"pong"`
	Time time.Time `json:"time"`
}
