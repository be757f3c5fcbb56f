package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Diagnostic logger of the process. Failures inside the log store are reported
// here and never written back into the store itself.

var (
	loggerInstance *slog.Logger
	once           sync.Once
)

func GetLogger() *slog.Logger {
	once.Do(func() {
		loggerInstance = New(os.Getenv("DIAGNOSTICS_LEVEL"), os.Getenv("DIAGNOSTICS_FILE"))
	})

	return loggerInstance
}

// New builds a text logger writing to stdout and, when filePath is set, to a
// size-rotated file as well.
func New(level string, filePath string) *slog.Logger {
	var writer io.Writer = os.Stdout

	if filePath != "" {
		writer = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
