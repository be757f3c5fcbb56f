package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type RequestOptions struct {
	Method    string
	URL       string
	Body      any
	Headers   map[string]string
	AuthToken string
	// 0 skips the status check
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// CreateTestRouter mounts controllers under /api/v1 with the given middlewares.
func CreateTestRouter(middlewares []gin.HandlerFunc, controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	v1.Use(middlewares...)

	for _, controller := range controllers {
		controller.RegisterRoutes(v1)
	}

	return router
}

func MakeRequest(t *testing.T, router http.Handler, options RequestOptions) *TestResponse {
	t.Helper()

	var requestBody *bytes.Buffer
	switch body := options.Body.(type) {
	case nil:
		requestBody = bytes.NewBuffer(nil)
	case []byte:
		requestBody = bytes.NewBuffer(body)
	case string:
		requestBody = bytes.NewBufferString(body)
	default:
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		requestBody = bytes.NewBuffer(bodyJSON)
	}

	req, err := http.NewRequest(options.Method, options.URL, requestBody)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if options.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 && w.Code != options.ExpectedStatus {
		t.Fatalf(
			"%s %s: expected status %d, got %d: %s",
			options.Method,
			options.URL,
			options.ExpectedStatus,
			w.Code,
			w.Body.String(),
		)
	}

	return &TestResponse{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
		Headers:    w.Header(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	expectedStatus int,
	response any,
) {
	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshalResponse(t, resp, response)
}

func MakePostRequest(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshalResponse(t, resp, response)
}

func MakePutRequest(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		Body:           body,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	body any,
	expectedStatus int,
	response any,
) {
	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	unmarshalResponse(t, resp, response)
}

func MakeDeleteRequest(
	t *testing.T,
	router http.Handler,
	url string,
	authToken string,
	expectedStatus int,
) *TestResponse {
	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func unmarshalResponse(t *testing.T, resp *TestResponse, response any) {
	t.Helper()

	if err := json.Unmarshal(resp.Body, response); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", string(resp.Body), err)
	}
}
