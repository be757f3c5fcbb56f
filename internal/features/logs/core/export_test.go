package logs_core

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ExportLogs_ParsedBack_EqualsGetLogs(t *testing.T) {
	store, _ := CreateTestLogStore(50)
	ctx := context.Background()

	store.Error(ctx, "failed to load", map[string]any{"attempt": 2, "tags": []any{"a", "b"}})
	store.UserAction(ctx, "clicked apply", nil)
	store.APICall(ctx, "get", "https://api.example.com/jobs", 200, nil)

	exported := store.ExportLogs(ctx)
	require.NoError(t, exported.Err)

	parsed, err := ParseExport(exported.Value, ExportFormatJSON)
	require.NoError(t, err)

	assert.Equal(t, store.GetLogs(ctx, LogFilter{Limit: store.Capacity()}).Value, parsed)
}

func Test_ExportLogs_UsesTwoSpaceIndentation(t *testing.T) {
	store, _ := CreateTestLogStore(50)
	ctx := context.Background()

	store.Info(ctx, "entry", nil)

	exported := store.ExportLogs(ctx).Value

	assert.True(t, strings.HasPrefix(exported, "[\n  {\n    \"timestamp\""))
}

func Test_ExportLogs_WhenEmpty_ReturnsEmptyArray(t *testing.T) {
	store, _ := CreateTestLogStore(50)

	exported := store.ExportLogs(context.Background())

	assert.NoError(t, exported.Err)
	assert.Equal(t, "[]", exported.Value)
}

func Test_ExportLogsAs_Yaml_ParsedBack_EqualsGetLogs(t *testing.T) {
	store, _ := CreateTestLogStore(50)
	ctx := context.Background()

	store.Error(ctx, "retry failed", map[string]any{"attempt": 2, "ratio": 0.5, "tags": []any{"a", 3}})
	store.Warn(ctx, "captcha detected", map[string]any{"signal": "iframe"})
	store.APICall(ctx, "get", "https://api.example.com/jobs", 503, 17)
	store.ScrapingProgress(ctx, "page loaded", nil)

	exported := store.ExportLogsAs(ctx, ExportFormatYAML)
	require.NoError(t, exported.Err)

	parsed, err := ParseExport(exported.Value, ExportFormatYAML)
	require.NoError(t, err)

	assert.Equal(t, store.GetLogs(ctx, LogFilter{Limit: store.Capacity()}).Value, parsed)
	assert.Equal(t, map[string]any{"attempt": float64(2), "ratio": 0.5, "tags": []any{"a", float64(3)}}, parsed[3].Data)
}

func Test_ExportLogsAs_UnknownFormat_ReturnsError(t *testing.T) {
	store, _ := CreateTestLogStore(50)

	exported := store.ExportLogsAs(context.Background(), ExportFormat("xml"))

	assert.Error(t, exported.Err)
	assert.Equal(t, "[]", exported.Value)
}

func Test_ExportArchive_Decoded_EqualsPlainExport(t *testing.T) {
	store, _ := CreateTestLogStore(50)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		store.SystemEvent(ctx, "tick", map[string]any{"i": i})
	}

	archive := store.ExportArchive(ctx, ExportFormatJSON)
	require.NoError(t, archive.Err)

	decoded, err := DecodeArchive(archive.Value)
	require.NoError(t, err)

	assert.Equal(t, store.ExportLogs(ctx).Value, decoded)
}
