package downdetect

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DowndetectController struct {
	downdetectService *DowndetectService
}

func (c *DowndetectController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/downdetect/is-available", c.IsAvailable)
}

// IsAvailable
// @Summary Check storage availability
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /downdetect/is-available [get]
func (c *DowndetectController) IsAvailable(ctx *gin.Context) {
	if err := c.downdetectService.IsAvailable(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
