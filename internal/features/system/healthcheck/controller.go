package system_healthcheck

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check service health
// @Description Report storage reachability, uptime and disk usage
// @Tags system
// @Produce json
// @Success 200 {object} HealthcheckResponseDTO
// @Failure 503 {object} HealthcheckResponseDTO
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	health := c.healthcheckService.GetHealth(ctx.Request.Context())
	if health.Status != StatusHealthy {
		ctx.JSON(http.StatusServiceUnavailable, health)
		return
	}

	ctx.JSON(http.StatusOK, health)
}
