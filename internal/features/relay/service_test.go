package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"extlog/internal/features/contexts"
	"extlog/internal/features/kvstore"
	logs_core "extlog/internal/features/logs/core"
	"extlog/internal/features/scanner"
	"extlog/internal/util/logger"
	"extlog/internal/util/rate_limit"
	test_utils "extlog/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRelayService(store *logs_core.LogStore, rateLimiter *rate_limit.RateLimiter, rps int) *RelayService {
	return NewRelayService(
		scanner.NewScannerService(store, logger.GetLogger()),
		rateLimiter,
		rps,
		logger.GetLogger(),
	)
}

func newRequest(t *testing.T, action RelayAction, payload any) *RelayRequestDTO {
	request := &RelayRequestDTO{Action: action}
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		request.Payload = body
	}
	return request
}

func Test_Dispatch_LogAction_StoresEntry(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()

	request := newRequest(t, ActionLog, LogPayload{
		Level:   logs_core.LogLevelError,
		Message: "tab crashed",
		Context: "tabs",
	})
	request.RequestID = "req-1"

	response, limit := service.Dispatch(ctx, store, request)

	assert.True(t, limit.Allowed)
	assert.True(t, response.Success)
	assert.Equal(t, "req-1", response.RequestID)

	result, ok := response.Data.(*LogResultDTO)
	require.True(t, ok)
	assert.True(t, result.Stored)
	assert.Equal(t, "tab crashed", result.Entry.Message)

	logs := store.GetLogs(ctx, logs_core.LogFilter{}).Value
	require.Len(t, logs, 1)
	assert.Equal(t, "tabs", logs[0].Context)
}

func Test_Dispatch_WithoutRequestID_GeneratesOne(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)

	first, _ := service.Dispatch(context.Background(), store, newRequest(t, ActionPing, nil))
	second, _ := service.Dispatch(context.Background(), store, newRequest(t, ActionPing, nil))

	assert.NotEmpty(t, first.RequestID)
	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.True(t, first.Success)
	assert.True(t, first.Data.(*PingResultDTO).Pong)
}

func Test_Dispatch_LogBelowThreshold_SucceedsWithoutStoring(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)

	response, _ := service.Dispatch(
		context.Background(),
		store,
		newRequest(t, ActionLog, LogPayload{Level: logs_core.LogLevelDebug, Message: "noise"}),
	)

	assert.True(t, response.Success)
	assert.False(t, response.Data.(*LogResultDTO).Stored)
	assert.Empty(t, store.GetLogs(context.Background(), logs_core.LogFilter{}).Value)
}

func Test_Dispatch_UnknownAction_ReturnsError(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)

	response, limit := service.Dispatch(context.Background(), store, newRequest(t, "reboot", nil))

	assert.True(t, limit.Allowed)
	assert.False(t, response.Success)
	assert.Equal(t, ErrorUnknownAction, response.Error)
}

func Test_Dispatch_MalformedPayload_ReturnsInvalidPayload(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)

	request := &RelayRequestDTO{Action: ActionLog, Payload: json.RawMessage(`{"message": 42}`)}
	response, _ := service.Dispatch(context.Background(), store, request)

	assert.False(t, response.Success)
	assert.Contains(t, response.Error, ErrorInvalidPayload)

	response, _ = service.Dispatch(context.Background(), store, newRequest(t, ActionUserAction, UserActionPayload{}))
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, ErrorInvalidPayload)
}

func Test_Dispatch_SetLevelAndGetLevel_UpdatesThreshold(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()

	response, _ := service.Dispatch(ctx, store, newRequest(t, ActionSetLevel, SetLevelPayload{Level: "warn"}))
	assert.True(t, response.Success)
	assert.Equal(t, logs_core.LogLevelWarn, response.Data)

	response, _ = service.Dispatch(ctx, store, newRequest(t, ActionSetLevel, SetLevelPayload{Level: "LOUD"}))
	assert.True(t, response.Success)
	assert.Equal(t, logs_core.LogLevelWarn, response.Data)

	response, _ = service.Dispatch(ctx, store, newRequest(t, ActionGetLevel, nil))
	assert.Equal(t, logs_core.LogLevelWarn, response.Data)
}

func Test_Dispatch_GetLogsAndClearLogs(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()

	store.Error(ctx, "first", nil)
	store.Warn(ctx, "second", nil)

	response, _ := service.Dispatch(ctx, store, newRequest(t, ActionGetLogs, GetLogsPayload{Limit: 1}))
	require.True(t, response.Success)
	logs := response.Data.([]*logs_core.LogEntry)
	require.Len(t, logs, 1)
	assert.Equal(t, "second", logs[0].Message)

	response, _ = service.Dispatch(ctx, store, newRequest(t, ActionClearLogs, nil))
	assert.True(t, response.Success)
	assert.Equal(t, true, response.Data)
	assert.Empty(t, store.GetLogs(ctx, logs_core.LogFilter{}).Value)
}

func Test_Dispatch_ExportLogs_ReturnsJsonText(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()
	store.Info(ctx, "exported", nil)

	response, _ := service.Dispatch(ctx, store, newRequest(t, ActionExportLogs, nil))
	require.True(t, response.Success)

	entries, err := logs_core.ParseExport(response.Data.(string), logs_core.ExportFormatJSON)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "exported", entries[0].Message)

	response, _ = service.Dispatch(ctx, store, newRequest(t, ActionExportLogs, ExportLogsPayload{Format: "csv"}))
	assert.False(t, response.Success)
}

func Test_Dispatch_DomainWrappers_UseTheirContexts(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()

	requests := []*RelayRequestDTO{
		newRequest(t, ActionUserAction, UserActionPayload{Action: "clicked scan"}),
		newRequest(t, ActionSystemEvent, SystemEventPayload{Event: "installed"}),
		newRequest(t, ActionAPICall, APICallPayload{Method: "get", URL: "https://api.example.com", Status: 500}),
		newRequest(t, ActionPlatformAPI, PlatformAPIPayload{API: "tabs", Method: "query", Success: false}),
		newRequest(t, ActionScrapingProgress, ScrapingProgressPayload{Stage: "paginating"}),
		newRequest(t, ActionOnboardingStep, OnboardingStepPayload{Step: "resume uploaded"}),
	}
	for _, request := range requests {
		response, _ := service.Dispatch(ctx, store, request)
		require.True(t, response.Success, request.Action)
	}

	logs := store.GetLogs(ctx, logs_core.LogFilter{}).Value
	require.Len(t, logs, 6)

	contextsByMessage := map[string]string{}
	for _, entry := range logs {
		contextsByMessage[entry.Message] = entry.Context
	}
	assert.Equal(t, map[string]string{
		"User action: clicked scan":                   logs_core.ContextUserAction,
		"System event: installed":                     logs_core.ContextSystem,
		"API call: GET https://api.example.com (500)": logs_core.ContextAPICall,
		"Chrome API: tabs.query":                      logs_core.ContextChromeAPI,
		"Scraping: paginating":                        logs_core.ContextScraping,
		"Onboarding: resume uploaded":                 logs_core.ContextOnboarding,
	}, contextsByMessage)
}

func Test_Dispatch_ScanPage_FallsBackToCallerOrigin(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()

	pageStore := store.WithEnvironment(logs_core.Environment{
		Origin:    "https://www.indeed.com/jobs?q=go",
		AgentInfo: logs_core.TestAgentInfo,
	})

	response, _ := service.Dispatch(ctx, pageStore, newRequest(t, ActionScanPage, ScanPagePayload{
		HTML: `<html><body><div class="job_seen_beacon" data-jk="abc"><h2 class="jobTitle">Go Developer</h2></div></body></html>`,
	}))
	require.True(t, response.Success, response.Error)

	result := response.Data.(*scanner.ScanResult)
	assert.Equal(t, "https://www.indeed.com/jobs?q=go", result.PageURL)
	require.Len(t, result.JobCards, 1)
	assert.Equal(t, "abc", result.JobCards[0].JobID)
}

func Test_Dispatch_ScanPage_EntriesCarryCallerAgentInfo(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, nil, 0)
	ctx := context.Background()

	callerStore := store.WithEnvironment(logs_core.Environment{
		Origin:    "https://www.linkedin.com/jobs/",
		AgentInfo: "content-script/1.4",
	})

	response, _ := service.Dispatch(ctx, callerStore, newRequest(t, ActionScanPage, ScanPagePayload{
		URL:  "https://www.linkedin.com/jobs/search?keywords=go",
		HTML: `<html><body><p>no results</p></body></html>`,
	}))
	require.True(t, response.Success, response.Error)

	logs := store.GetLogs(ctx, logs_core.LogFilter{}).Value
	require.NotEmpty(t, logs)
	for _, entry := range logs {
		assert.Equal(t, "content-script/1.4", entry.AgentInfo, entry.Message)
		assert.Equal(t, "https://www.linkedin.com/jobs/search?keywords=go", entry.Origin)
	}
}

func Test_Dispatch_WhenStorageFails_ReportsFailure(t *testing.T) {
	store := logs_core.CreateTestLogStoreWithBackend(kvstore.NewFailingStore(assert.AnError), 100)
	service := createTestRelayService(store, nil, 0)

	response, limit := service.Dispatch(
		context.Background(),
		store,
		newRequest(t, ActionLog, LogPayload{Level: logs_core.LogLevelError, Message: "lost"}),
	)

	assert.True(t, limit.Allowed)
	assert.False(t, response.Success)
	assert.Equal(t, errStorageFailure.Error(), response.Error)
}

func Test_Dispatch_OverRateLimit_IsRejected(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	service := createTestRelayService(store, rate_limit.NewRateLimiter(), 1)

	for i := 0; i < 5; i++ {
		_, limit := service.Dispatch(context.Background(), store, newRequest(t, ActionPing, nil))
		require.True(t, limit.Allowed)
	}

	response, limit := service.Dispatch(context.Background(), store, newRequest(t, ActionPing, nil))

	assert.False(t, limit.Allowed)
	assert.False(t, response.Success)
	assert.Equal(t, ErrorRateLimitExceeded, response.Error)
}

func Test_RelayEndpoint_OverRateLimit_SetsRetryHeaders(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	router := test_utils.CreateTestRouter(
		nil,
		&RelayController{createTestRelayService(store, rate_limit.NewRateLimiter(), 1), store},
	)

	for i := 0; i < 5; i++ {
		test_utils.MakePostRequest(t, router, "/api/v1/relay", "", newRequest(t, ActionPing, nil), http.StatusOK)
	}

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/relay",
		"",
		newRequest(t, ActionPing, nil),
		http.StatusTooManyRequests,
	)

	assert.Equal(t, "1", resp.Headers.Get("Retry-After"))
	assert.Equal(t, "0", resp.Headers.Get("X-RateLimit-Remaining"))
	assert.Contains(t, string(resp.Body), ErrorRateLimitExceeded)
}

func Test_RelayEndpoint_WithContextToken_StampsCallerOrigin(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	contextService := contexts.NewContextService("relay-test-secret", time.Hour)
	router := test_utils.CreateTestRouter(
		[]gin.HandlerFunc{contexts.ContextMiddleware(contextService)},
		&RelayController{createTestRelayService(store, rate_limit.NewRateLimiter(), 20), store},
	)

	token, err := contextService.IssueToken(&contexts.IssueTokenRequestDTO{
		Kind:   contexts.ContextKindContent,
		Origin: "https://www.linkedin.com/jobs/",
	})
	require.NoError(t, err)

	var response RelayResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/relay",
		"Bearer "+token.Token,
		newRequest(t, ActionLog, LogPayload{Level: logs_core.LogLevelInfo, Message: "content script ready"}),
		http.StatusOK,
		&response,
	)

	assert.True(t, response.Success)

	logs := store.GetLogs(context.Background(), logs_core.LogFilter{}).Value
	require.Len(t, logs, 1)
	assert.Equal(t, "https://www.linkedin.com/jobs/", logs[0].Origin)
}

func Test_RelayEndpoint_WithoutAction_ReturnsBadRequest(t *testing.T) {
	store, _ := logs_core.CreateTestLogStore(100)
	router := test_utils.CreateTestRouter(
		nil,
		&RelayController{createTestRelayService(store, nil, 0), store},
	)

	test_utils.MakePostRequest(t, router, "/api/v1/relay", "", map[string]any{"payload": "x"}, http.StatusBadRequest)
}
