package logs_core

import (
	"time"
)

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"         yaml:"timestamp"`
	Level     LogLevel  `json:"level"             yaml:"level"`
	Message   string    `json:"message"           yaml:"message"`
	Data      any       `json:"data,omitempty"    yaml:"data,omitempty"`
	Context   string    `json:"context,omitempty" yaml:"context,omitempty"`
	Origin    string    `json:"origin"            yaml:"origin"`
	AgentInfo string    `json:"agentInfo"         yaml:"agentInfo"`
}

type LogFilter struct {
	// exact match; empty means every level
	Level LogLevel
	// entries older than Since are skipped; zero keeps everything
	Since time.Time
	Limit int
}

const DefaultLogsLimit = 100

// Result carries the outcome of a store operation. Value always holds a safe
// default (empty slice, nil entry, current level) when Err is set.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

func okResult[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func failedResult[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}
