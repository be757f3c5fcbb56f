package logs_api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"extlog/internal/features/contexts"
	"extlog/internal/features/kvstore"
	logs_core "extlog/internal/features/logs/core"

	"github.com/gin-gonic/gin"
)

type LogsController struct {
	logStore      *logs_core.LogStore
	validator     *LogsValidator
	exportLimiter *ExportLimiter
}

func (c *LogsController) RegisterRoutes(router *gin.RouterGroup) {
	logRoutes := router.Group("/logs")

	logRoutes.POST("", c.CreateLog)
	logRoutes.GET("", c.GetLogs)
	logRoutes.DELETE("", c.ClearLogs)
	logRoutes.GET("/export", c.ExportLogs)
	logRoutes.GET("/level", c.GetLevel)
	logRoutes.PUT("/level", c.SetLevel)
}

// CreateLog
// @Summary Record a log entry
// @Description Record one entry stamped with the caller's origin. Entries below the current threshold are accepted but not stored.
// @Tags logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateLogRequestDTO true "Log entry"
// @Success 201 {object} CreateLogResponseDTO
// @Success 202 {object} CreateLogResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /logs [post]
func (c *LogsController) CreateLog(ctx *gin.Context) {
	var request CreateLogRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := c.validator.ValidateCreateLog(&request); err != nil {
		c.handleError(ctx, err)
		return
	}

	store := contexts.ResolveLogStore(ctx, c.logStore)
	result := store.Log(ctx.Request.Context(), request.Level, request.Message, request.Data, request.Context)
	if result.Err != nil {
		c.handleStorageError(ctx, result.Err)
		return
	}

	if result.Value == nil {
		ctx.JSON(http.StatusAccepted, CreateLogResponseDTO{Stored: false})
		return
	}

	ctx.JSON(http.StatusCreated, CreateLogResponseDTO{Stored: true, Entry: result.Value})
}

// GetLogs
// @Summary Get recent log entries
// @Description Get stored entries newest first. An unknown level matches nothing.
// @Tags logs
// @Produce json
// @Param level query string false "Exact level to match"
// @Param limit query int false "Maximum number of entries (default 100)"
// @Param since query string false "Skip entries older than this ISO 8601 timestamp or unix epoch"
// @Success 200 {object} GetLogsResponseDTO
// @Failure 400 {object} map[string]string
// @Router /logs [get]
func (c *LogsController) GetLogs(ctx *gin.Context) {
	limit, err := c.validator.ParseLimit(ctx.Query("limit"), c.logStore.Capacity())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	since, err := c.validator.ParseSince(ctx.Query("since"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	filter := logs_core.LogFilter{
		Level: logs_core.LogLevel(ctx.Query("level")),
		Since: since,
		Limit: limit,
	}

	result := c.logStore.GetLogs(ctx.Request.Context(), filter)
	if result.Err != nil {
		c.handleStorageError(ctx, result.Err)
		return
	}

	ctx.JSON(http.StatusOK, GetLogsResponseDTO{Logs: result.Value})
}

// ClearLogs
// @Summary Clear all log entries
// @Description Remove every stored entry. The threshold is kept.
// @Tags logs
// @Success 204
// @Failure 503 {object} map[string]string
// @Router /logs [delete]
func (c *LogsController) ClearLogs(ctx *gin.Context) {
	result := c.logStore.ClearLogs(ctx.Request.Context())
	if result.Err != nil {
		c.handleStorageError(ctx, result.Err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ExportLogs
// @Summary Export all log entries
// @Description Download every stored entry newest first as indented JSON or YAML, optionally zstd-compressed
// @Tags logs
// @Produce json
// @Param format query string false "json (default) or yaml"
// @Param compress query string false "zstd"
// @Success 200 {string} string
// @Failure 400 {object} map[string]string
// @Failure 429 {object} map[string]string
// @Router /logs/export [get]
func (c *LogsController) ExportLogs(ctx *gin.Context) {
	format, err := c.validator.ParseExportFormat(ctx.Query("format"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	compress := ctx.Query("compress")
	if compress != "" && compress != "zstd" {
		c.handleError(ctx, &ValidationError{
			Code:    ErrorInvalidExportFormat,
			Message: "compress must be zstd",
		})
		return
	}

	if err := c.exportLimiter.AcquireExportSlot(); err != nil {
		c.handleError(ctx, err)
		return
	}
	defer c.exportLimiter.ReleaseExportSlot()

	filename := fmt.Sprintf("extension-logs-%s.%s", time.Now().UTC().Format("20060102-150405"), format)
	contentType := "application/json"
	if format == logs_core.ExportFormatYAML {
		contentType = "application/yaml"
	}

	if compress == "zstd" {
		result := c.logStore.ExportArchive(ctx.Request.Context(), format)
		if result.Err != nil {
			c.handleStorageError(ctx, result.Err)
			return
		}

		ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.zst"`, filename))
		ctx.Data(http.StatusOK, "application/zstd", result.Value)
		return
	}

	result := c.logStore.ExportLogsAs(ctx.Request.Context(), format)
	if result.Err != nil {
		c.handleStorageError(ctx, result.Err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, contentType+"; charset=utf-8", []byte(result.Value))
}

// GetLevel
// @Summary Get the log threshold
// @Tags logs
// @Produce json
// @Success 200 {object} LogLevelDTO
// @Router /logs/level [get]
func (c *LogsController) GetLevel(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, LogLevelDTO{Level: c.logStore.GetLevel(ctx.Request.Context())})
}

// SetLevel
// @Summary Set the log threshold
// @Description Entries less severe than the threshold are dropped
// @Tags logs
// @Accept json
// @Produce json
// @Param request body LogLevelDTO true "New threshold"
// @Success 200 {object} LogLevelDTO
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /logs/level [put]
func (c *LogsController) SetLevel(ctx *gin.Context) {
	var request LogLevelDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	level, err := c.validator.ParseLevel(string(request.Level))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	result := c.logStore.SetLevel(ctx.Request.Context(), string(level))
	if result.Err != nil {
		c.handleStorageError(ctx, result.Err)
		return
	}

	ctx.JSON(http.StatusOK, LogLevelDTO{Level: result.Value})
}

func (c *LogsController) handleError(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		status := http.StatusBadRequest
		if validationErr.Code == ErrorTooManyConcurrentExports {
			status = http.StatusTooManyRequests
		}

		ctx.JSON(status, gin.H{
			"error": validationErr.Message,
			"code":  validationErr.Code,
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

func (c *LogsController) handleStorageError(ctx *gin.Context, err error) {
	message := "Log storage failed"
	if errors.Is(err, kvstore.ErrStorageUnavailable) {
		message = "Log storage is unavailable"
	}

	ctx.JSON(http.StatusServiceUnavailable, gin.H{
		"error": message,
		"code":  ErrorStorageFailure,
	})
}
