package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/features/scanner"
	"extlog/internal/util/rate_limit"

	"github.com/google/uuid"
)

var (
	errInvalidPayload = errors.New(ErrorInvalidPayload)
	errStorageFailure = errors.New("log storage failed")
)

type actionHandler func(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error)

// RelayService answers request/response messages exchanged between the
// popup, the content scripts and the background context.
type RelayService struct {
	scannerService *scanner.ScannerService
	rateLimiter    *rate_limit.RateLimiter
	rpsLimit       int
	logger         *slog.Logger
	handlers       map[RelayAction]actionHandler
}

func NewRelayService(
	scannerService *scanner.ScannerService,
	rateLimiter *rate_limit.RateLimiter,
	rpsLimit int,
	logger *slog.Logger,
) *RelayService {
	s := &RelayService{
		scannerService: scannerService,
		rateLimiter:    rateLimiter,
		rpsLimit:       rpsLimit,
		logger:         logger,
	}

	s.handlers = map[RelayAction]actionHandler{
		ActionLog:              s.handleLog,
		ActionGetLogs:          s.handleGetLogs,
		ActionClearLogs:        s.handleClearLogs,
		ActionExportLogs:       s.handleExportLogs,
		ActionSetLevel:         s.handleSetLevel,
		ActionGetLevel:         s.handleGetLevel,
		ActionUserAction:       s.handleUserAction,
		ActionSystemEvent:      s.handleSystemEvent,
		ActionAPICall:          s.handleAPICall,
		ActionPlatformAPI:      s.handlePlatformAPI,
		ActionScrapingProgress: s.handleScrapingProgress,
		ActionOnboardingStep:   s.handleOnboardingStep,
		ActionScanPage:         s.handleScanPage,
		ActionPing:             s.handlePing,
	}

	return s
}

// Dispatch runs one relay request against store, the caller's view of the
// log stream. The returned limit is never nil; when it is not Allowed the
// request was rejected before reaching its handler.
func (s *RelayService) Dispatch(
	ctx context.Context,
	store *logs_core.LogStore,
	request *RelayRequestDTO,
) (*RelayResponseDTO, *rate_limit.RateLimitResult) {
	response := &RelayResponseDTO{RequestID: request.RequestID}
	if response.RequestID == "" {
		response.RequestID = uuid.NewString()
	}

	limit := &rate_limit.RateLimitResult{Allowed: true}
	if s.rateLimiter != nil {
		// burst is five seconds worth of requests
		limit = s.rateLimiter.CheckRateLimit(store.Environment().Origin, s.rpsLimit, s.rpsLimit*5)
		if !limit.Allowed {
			response.Error = ErrorRateLimitExceeded
			return response, limit
		}
	}

	handler, ok := s.handlers[request.Action]
	if !ok {
		response.Error = ErrorUnknownAction
		return response, limit
	}

	data, err := handler(ctx, store, request.Payload)
	if err != nil {
		if !errors.Is(err, errInvalidPayload) {
			s.logger.Warn("relay action failed", "action", request.Action, "error", err)
		}
		response.Error = err.Error()
		return response, limit
	}

	response.Success = true
	response.Data = data

	return response, limit
}

func decodePayload[T any](payload json.RawMessage) (*T, error) {
	value := new(T)
	if len(payload) == 0 || string(payload) == "null" {
		return value, nil
	}

	if err := json.Unmarshal(payload, value); err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidPayload, err.Error())
	}

	return value, nil
}

func logResult(result logs_core.Result[*logs_core.LogEntry]) (any, error) {
	if result.Err != nil {
		return nil, errStorageFailure
	}

	return &LogResultDTO{Stored: result.Value != nil, Entry: result.Value}, nil
}

func (s *RelayService) handleLog(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[LogPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Message == "" {
		return nil, fmt.Errorf("%w: message is required", errInvalidPayload)
	}

	return logResult(store.Log(ctx, request.Level, request.Message, request.Data, request.Context))
}

func (s *RelayService) handleGetLogs(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[GetLogsPayload](payload)
	if err != nil {
		return nil, err
	}

	result := store.GetLogs(ctx, logs_core.LogFilter{
		Level: request.Level,
		Since: request.Since,
		Limit: request.Limit,
	})
	if result.Err != nil {
		return nil, errStorageFailure
	}

	return result.Value, nil
}

func (s *RelayService) handleClearLogs(ctx context.Context, store *logs_core.LogStore, _ json.RawMessage) (any, error) {
	result := store.ClearLogs(ctx)
	if result.Err != nil {
		return nil, errStorageFailure
	}

	return result.Value, nil
}

func (s *RelayService) handleExportLogs(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[ExportLogsPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Format != "" && !request.Format.IsValid() {
		return nil, fmt.Errorf("%w: format must be json or yaml", errInvalidPayload)
	}

	result := store.ExportLogsAs(ctx, request.Format)
	if result.Err != nil {
		return nil, errStorageFailure
	}

	return result.Value, nil
}

func (s *RelayService) handleSetLevel(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[SetLevelPayload](payload)
	if err != nil {
		return nil, err
	}

	// unknown names leave the threshold unchanged and report the current one
	result := store.SetLevel(ctx, request.Level)
	if result.Err != nil {
		return nil, errStorageFailure
	}

	return result.Value, nil
}

func (s *RelayService) handleGetLevel(ctx context.Context, store *logs_core.LogStore, _ json.RawMessage) (any, error) {
	return store.GetLevel(ctx), nil
}

func (s *RelayService) handleUserAction(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[UserActionPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Action == "" {
		return nil, fmt.Errorf("%w: action is required", errInvalidPayload)
	}

	return logResult(store.UserAction(ctx, request.Action, request.Details))
}

func (s *RelayService) handleSystemEvent(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[SystemEventPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Event == "" {
		return nil, fmt.Errorf("%w: event is required", errInvalidPayload)
	}

	return logResult(store.SystemEvent(ctx, request.Event, request.Details))
}

func (s *RelayService) handleAPICall(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[APICallPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Method == "" || request.URL == "" {
		return nil, fmt.Errorf("%w: method and url are required", errInvalidPayload)
	}

	return logResult(store.APICall(ctx, request.Method, request.URL, request.Status, request.Data))
}

func (s *RelayService) handlePlatformAPI(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[PlatformAPIPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.API == "" || request.Method == "" {
		return nil, fmt.Errorf("%w: api and method are required", errInvalidPayload)
	}

	return logResult(store.PlatformAPI(ctx, request.API, request.Method, request.Success, request.Data))
}

func (s *RelayService) handleScrapingProgress(
	ctx context.Context,
	store *logs_core.LogStore,
	payload json.RawMessage,
) (any, error) {
	request, err := decodePayload[ScrapingProgressPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Stage == "" {
		return nil, fmt.Errorf("%w: stage is required", errInvalidPayload)
	}

	return logResult(store.ScrapingProgress(ctx, request.Stage, request.Data))
}

func (s *RelayService) handleOnboardingStep(
	ctx context.Context,
	store *logs_core.LogStore,
	payload json.RawMessage,
) (any, error) {
	request, err := decodePayload[OnboardingStepPayload](payload)
	if err != nil {
		return nil, err
	}
	if request.Step == "" {
		return nil, fmt.Errorf("%w: step is required", errInvalidPayload)
	}

	return logResult(store.OnboardingStep(ctx, request.Step, request.Data))
}

func (s *RelayService) handleScanPage(ctx context.Context, store *logs_core.LogStore, payload json.RawMessage) (any, error) {
	request, err := decodePayload[ScanPagePayload](payload)
	if err != nil {
		return nil, err
	}
	if request.HTML == "" {
		return nil, fmt.Errorf("%w: html is required", errInvalidPayload)
	}

	pageURL := request.URL
	if pageURL == "" {
		pageURL = store.Environment().Origin
	}

	return s.scannerService.WithLogStore(store).ScanPage(ctx, pageURL, request.HTML)
}

func (s *RelayService) handlePing(_ context.Context, _ *logs_core.LogStore, _ json.RawMessage) (any, error) {
	return &PingResultDTO{Pong: true, Time: time.Now().UTC()}, nil
}
