package relay

type RelayAction string

const (
	ActionLog              RelayAction = "log"
	ActionGetLogs          RelayAction = "getLogs"
	ActionClearLogs        RelayAction = "clearLogs"
	ActionExportLogs       RelayAction = "exportLogs"
	ActionSetLevel         RelayAction = "setLevel"
	ActionGetLevel         RelayAction = "getLevel"
	ActionUserAction       RelayAction = "userAction"
	ActionSystemEvent      RelayAction = "systemEvent"
	ActionAPICall          RelayAction = "apiCall"
	ActionPlatformAPI      RelayAction = "chromeApi"
	ActionScrapingProgress RelayAction = "scrapingProgress"
	ActionOnboardingStep   RelayAction = "onboardingStep"
	ActionScanPage         RelayAction = "scanPage"
	ActionPing             RelayAction = "ping"
)

const (
	ErrorUnknownAction     = "unknown action"
	ErrorInvalidPayload    = "invalid payload"
	ErrorRateLimitExceeded = "rate limit exceeded"
)
