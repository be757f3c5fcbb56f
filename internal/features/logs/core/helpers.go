package logs_core

import (
	"context"
	"fmt"
	"strings"
)

func (s *LogStore) Error(ctx context.Context, message string, data any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelError, message, data, "")
}

func (s *LogStore) Warn(ctx context.Context, message string, data any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelWarn, message, data, "")
}

func (s *LogStore) Info(ctx context.Context, message string, data any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelInfo, message, data, "")
}

func (s *LogStore) Debug(ctx context.Context, message string, data any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelDebug, message, data, "")
}

func (s *LogStore) UserAction(ctx context.Context, action string, details any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelInfo, "User action: "+action, details, ContextUserAction)
}

func (s *LogStore) SystemEvent(ctx context.Context, event string, details any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelInfo, "System event: "+event, details, ContextSystem)
}

// APICall records an outbound request. Status 0 stands for a network failure
// and is logged as an error together with every 4xx and 5xx status.
func (s *LogStore) APICall(
	ctx context.Context,
	method string,
	url string,
	status int,
	data any,
) Result[*LogEntry] {
	level := LogLevelInfo
	if status == 0 || status >= 400 {
		level = LogLevelError
	}

	message := fmt.Sprintf("API call: %s %s (%d)", strings.ToUpper(method), url, status)

	return s.Log(ctx, level, message, data, ContextAPICall)
}

func (s *LogStore) PlatformAPI(
	ctx context.Context,
	api string,
	method string,
	success bool,
	data any,
) Result[*LogEntry] {
	level := LogLevelDebug
	if !success {
		level = LogLevelError
	}

	return s.Log(ctx, level, fmt.Sprintf("Chrome API: %s.%s", api, method), data, ContextChromeAPI)
}

func (s *LogStore) ScrapingProgress(ctx context.Context, stage string, data any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelInfo, "Scraping: "+stage, data, ContextScraping)
}

func (s *LogStore) OnboardingStep(ctx context.Context, step string, data any) Result[*LogEntry] {
	return s.Log(ctx, LogLevelInfo, "Onboarding: "+step, data, ContextOnboarding)
}
