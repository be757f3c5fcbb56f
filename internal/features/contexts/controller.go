package contexts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ContextController struct {
	contextService *ContextService
}

func (c *ContextController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/contexts/token", c.IssueToken)
}

// IssueToken
// @Summary Issue an execution context token
// @Description Issue a token identifying the calling extension context and the page it runs in
// @Tags contexts
// @Accept json
// @Produce json
// @Param request body IssueTokenRequestDTO true "Context description"
// @Success 200 {object} IssueTokenResponseDTO
// @Failure 400 {object} map[string]string
// @Router /contexts/token [post]
func (c *ContextController) IssueToken(ctx *gin.Context) {
	var request IssueTokenRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	response, err := c.contextService.IssueToken(&request)
	if err != nil {
		if errors.Is(err, ErrInvalidKind) || errors.Is(err, ErrInvalidOrigin) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	ctx.JSON(http.StatusOK, response)
}
