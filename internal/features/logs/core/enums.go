package logs_core

import "strings"

type LogLevel string

const (
	LogLevelError LogLevel = "ERROR"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelDebug LogLevel = "DEBUG"
)

const DefaultLogLevel = LogLevelInfo

// lower rank is more severe
var levelRanks = map[LogLevel]int{
	LogLevelError: 0,
	LogLevelWarn:  1,
	LogLevelInfo:  2,
	LogLevelDebug: 3,
}

func (l LogLevel) IsValid() bool {
	_, ok := levelRanks[l]
	return ok
}

// Rank returns -1 for unrecognised levels.
func (l LogLevel) Rank() int {
	rank, ok := levelRanks[l]
	if !ok {
		return -1
	}
	return rank
}

// Accepts reports whether an entry at level passes a threshold of l.
func (l LogLevel) Accepts(level LogLevel) bool {
	return level.IsValid() && level.Rank() <= l.Rank()
}

func ParseLogLevel(name string) (LogLevel, bool) {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(name)))
	if !level.IsValid() {
		return "", false
	}
	return level, true
}

func AllLogLevels() []LogLevel {
	return []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug}
}

// Context tags of the domain wrappers. Any other string is accepted as a
// free-form context as well.
const (
	ContextUserAction = "user_action"
	ContextSystem     = "system"
	ContextAPICall    = "api_call"
	ContextChromeAPI  = "chrome_api"
	ContextScraping   = "scraping"
	ContextOnboarding = "onboarding"
)

type RejectReason string

const (
	RejectReasonThreshold          RejectReason = "threshold"
	RejectReasonUnknownLevel       RejectReason = "unknown_level"
	RejectReasonStorageUnavailable RejectReason = "storage_unavailable"
	RejectReasonStorageFailure     RejectReason = "storage_failure"
)

type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatYAML ExportFormat = "yaml"
)

func (f ExportFormat) IsValid() bool {
	return f == ExportFormatJSON || f == ExportFormatYAML
}
