package relay

import (
	"net/http"
	"strconv"

	"extlog/internal/features/contexts"
	logs_core "extlog/internal/features/logs/core"

	"github.com/gin-gonic/gin"
)

type RelayController struct {
	relayService *RelayService
	logStore     *logs_core.LogStore
}

func (c *RelayController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/relay", c.Relay)
}

// Relay
// @Summary Relay a message to the background context
// @Description Run one request/response message on behalf of a popup or content script. Failures are reported in the envelope, not through the status code.
// @Tags relay
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RelayRequestDTO true "Relay message"
// @Success 200 {object} RelayResponseDTO
// @Failure 400 {object} map[string]string
// @Failure 429 {object} RelayResponseDTO
// @Router /relay [post]
func (c *RelayController) Relay(ctx *gin.Context) {
	var request RelayRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	store := contexts.ResolveLogStore(ctx, c.logStore)

	response, limit := c.relayService.Dispatch(ctx.Request.Context(), store, &request)
	if !limit.Allowed {
		ctx.Header("Retry-After", strconv.Itoa(limit.RetryAfterSec))
		ctx.Header("X-RateLimit-Remaining", strconv.Itoa(limit.Remaining))
		ctx.JSON(http.StatusTooManyRequests, response)
		return
	}

	ctx.JSON(http.StatusOK, response)
}
