package contexts

import (
	"net/http"
	"testing"
	"time"

	logs_core "extlog/internal/features/logs/core"
	test_utils "extlog/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "contexts-test-secret"

func Test_IssueToken_ContentContext_RoundTripsOrigin(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)

	response, err := service.IssueToken(&IssueTokenRequestDTO{
		Kind:   ContextKindContent,
		Origin: "https://www.linkedin.com/jobs/search/",
	})
	require.NoError(t, err)

	executionContext, err := service.ParseToken(response.Token)
	require.NoError(t, err)

	assert.Equal(t, ContextKindContent, executionContext.Kind)
	assert.Equal(t, "https://www.linkedin.com/jobs/search/", executionContext.Origin)
}

func Test_IssueToken_BackgroundContext_UsesSentinelOrigin(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)

	response, err := service.IssueToken(&IssueTokenRequestDTO{
		Kind:   ContextKindBackground,
		Origin: "https://ignored.example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, logs_core.BackgroundOrigin, response.Origin)
}

func Test_IssueToken_ContentContextWithoutPageURL_ReturnsError(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)

	for _, origin := range []string{"", "not a url", "chrome-extension://abc/popup.html"} {
		_, err := service.IssueToken(&IssueTokenRequestDTO{Kind: ContextKindContent, Origin: origin})
		assert.ErrorIs(t, err, ErrInvalidOrigin, origin)
	}
}

func Test_IssueToken_UnknownKind_ReturnsError(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)

	_, err := service.IssueToken(&IssueTokenRequestDTO{Kind: "sidebar"})

	assert.ErrorIs(t, err, ErrInvalidKind)
}

func Test_ParseToken_SignedWithOtherKey_ReturnsError(t *testing.T) {
	issuer := NewContextService("other-secret", time.Hour)
	response, err := issuer.IssueToken(&IssueTokenRequestDTO{Kind: ContextKindPopup})
	require.NoError(t, err)

	_, err = NewContextService(testSecretKey, time.Hour).ParseToken(response.Token)

	assert.Error(t, err)
}

func Test_ParseToken_Expired_ReturnsError(t *testing.T) {
	service := NewContextService(testSecretKey, time.Minute)
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	response, err := service.IssueToken(&IssueTokenRequestDTO{Kind: ContextKindPopup})
	require.NoError(t, err)

	_, err = service.ParseToken(response.Token)

	assert.Error(t, err)
}

func Test_ParseToken_NoneAlgorithm_IsRejected(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":    "8b0f6a52-3c1d-4bb1-9a54-1fd1d8b0c6b1",
		"kind":   "content",
		"origin": "https://example.com",
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewContextService(testSecretKey, time.Hour).ParseToken(tokenString)

	assert.Error(t, err)
}

func Test_ContextMiddleware_InvalidToken_ReturnsUnauthorized(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)
	router := createMiddlewareTestRouter(service)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/whoami", "Bearer garbage", http.StatusUnauthorized)

	assert.Contains(t, string(resp.Body), "Invalid context token")
}

func Test_ContextMiddleware_ValidToken_StampsLogsWithCallerOrigin(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)
	router := createMiddlewareTestRouter(service)

	response, err := service.IssueToken(&IssueTokenRequestDTO{
		Kind:   ContextKindContent,
		Origin: "https://jobs.example.com/view/1",
	})
	require.NoError(t, err)

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/whoami",
		AuthToken:      "Bearer " + response.Token,
		Headers:        map[string]string{"User-Agent": "Mozilla/5.0 test"},
		ExpectedStatus: http.StatusOK,
	})

	assert.JSONEq(t, `{"origin":"https://jobs.example.com/view/1","agentInfo":"Mozilla/5.0 test"}`, string(resp.Body))
}

func Test_ContextMiddleware_WithoutToken_UsesStoreEnvironment(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)
	router := createMiddlewareTestRouter(service)

	resp := test_utils.MakeGetRequest(t, router, "/api/v1/whoami", "", http.StatusOK)

	assert.JSONEq(
		t,
		`{"origin":"background","agentInfo":"`+logs_core.TestAgentInfo+`"}`,
		string(resp.Body),
	)
}

func Test_IssueTokenEndpoint_ReturnsToken(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)
	router := test_utils.CreateTestRouter(nil, &ContextController{service})

	var response IssueTokenResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/contexts/token",
		"",
		IssueTokenRequestDTO{Kind: ContextKindPopup, Origin: "chrome-extension://abc/popup.html"},
		http.StatusOK,
		&response,
	)

	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "chrome-extension://abc/popup.html", response.Origin)
}

func Test_IssueTokenEndpoint_InvalidOrigin_ReturnsBadRequest(t *testing.T) {
	service := NewContextService(testSecretKey, time.Hour)
	router := test_utils.CreateTestRouter(nil, &ContextController{service})

	resp := test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/contexts/token",
		"",
		IssueTokenRequestDTO{Kind: ContextKindContent},
		http.StatusBadRequest,
	)

	assert.Contains(t, string(resp.Body), ErrInvalidOrigin.Error())
}

type whoamiController struct {
	store *logs_core.LogStore
}

func (c *whoamiController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/whoami", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, ResolveLogStore(ctx, c.store).Environment())
	})
}

func createMiddlewareTestRouter(service *ContextService) *gin.Engine {
	store, _ := logs_core.CreateTestLogStore(10)

	return test_utils.CreateTestRouter(
		[]gin.HandlerFunc{ContextMiddleware(service)},
		&whoamiController{store},
	)
}
