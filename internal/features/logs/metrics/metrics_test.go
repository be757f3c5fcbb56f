package logs_metrics

import (
	"context"
	"net/http"
	"testing"

	logs_core "extlog/internal/features/logs/core"
	test_utils "extlog/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func Test_LogMetrics_StoredAndRejectedEntries_AreCounted(t *testing.T) {
	metrics := NewLogMetrics(prometheus.NewRegistry())
	store, _ := logs_core.CreateTestLogStore(10)
	store.AddListener(metrics)
	ctx := context.Background()

	store.Error(ctx, "error", nil)
	store.UserAction(ctx, "click", nil)
	store.Log(ctx, logs_core.LogLevelInfo, "custom", nil, "my-free-form-context")
	store.Debug(ctx, "filtered", nil)
	store.Log(ctx, "TRACE", "unknown", nil, "")

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.storedTotal.WithLabelValues("ERROR", "none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.storedTotal.WithLabelValues("INFO", logs_core.ContextUserAction)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.storedTotal.WithLabelValues("INFO", "other")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rejectedTotal.WithLabelValues("DEBUG", "threshold")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.rejectedTotal.WithLabelValues("UNKNOWN", "unknown_level")))
}

func Test_NewLogMetrics_RegisteredTwice_ReusesCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := NewLogMetrics(registry)
	second := NewLogMetrics(registry)

	assert.Same(t, first.storedTotal, second.storedTotal)
	assert.Same(t, first.requestLatency, second.requestLatency)
}

func Test_MetricsEndpoint_ExposesInstrumentedRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewLogMetrics(registry)

	router := test_utils.CreateTestRouter(
		[]gin.HandlerFunc{metrics.InstrumentMiddleware()},
		&MetricsController{registry},
	)

	test_utils.MakeGetRequest(t, router, "/api/v1/metrics", "", http.StatusOK)
	resp := test_utils.MakeGetRequest(t, router, "/api/v1/metrics", "", http.StatusOK)

	assert.Contains(t, string(resp.Body), `extlog_api_http_requests_total{method="GET",route="/api/v1/metrics",status="200"} 1`)
}
