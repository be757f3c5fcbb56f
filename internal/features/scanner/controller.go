package scanner

import (
	"net/http"

	"extlog/internal/features/contexts"

	"github.com/gin-gonic/gin"
)

type ScannerController struct {
	scannerService *ScannerService
}

func (c *ScannerController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/scanner/scan", c.ScanPage)
}

// ScanPage
// @Summary Scan page markup
// @Description Find job cards and visible captcha challenges in a captured page
// @Tags scanner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScanPageRequestDTO true "Page to scan"
// @Success 200 {object} ScanResult
// @Failure 400 {object} map[string]string
// @Router /scanner/scan [post]
func (c *ScannerController) ScanPage(ctx *gin.Context) {
	var request ScanPageRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	service := c.scannerService
	if _, ok := contexts.GetExecutionContextFromContext(ctx); ok {
		service = service.WithLogStore(contexts.ResolveLogStore(ctx, service.logStore))
	}

	result, err := service.ScanPage(ctx.Request.Context(), request.URL, request.HTML)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, result)
}
