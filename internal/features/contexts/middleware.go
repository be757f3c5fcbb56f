package contexts

import (
	"net/http"
	"strings"

	logs_core "extlog/internal/features/logs/core"

	"github.com/gin-gonic/gin"
)

const executionContextKey = "executionContext"

// ContextMiddleware reads an optional context token. Requests without one act
// as the background context; a present but invalid token is rejected.
func ContextMiddleware(contextService *ContextService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader("Authorization")
		if token == "" {
			ctx.Next()
			return
		}

		token = strings.TrimPrefix(token, "Bearer ")

		executionContext, err := contextService.ParseToken(token)
		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid context token"})
			ctx.Abort()
			return
		}

		ctx.Set(executionContextKey, executionContext)
		ctx.Next()
	}
}

func GetExecutionContextFromContext(ctx *gin.Context) (*ExecutionContext, bool) {
	value, exists := ctx.Get(executionContextKey)
	if !exists {
		return nil, false
	}

	executionContext, ok := value.(*ExecutionContext)

	return executionContext, ok
}

// ResolveLogStore returns the view of store that stamps entries with the
// caller's origin and user agent.
func ResolveLogStore(ctx *gin.Context, store *logs_core.LogStore) *logs_core.LogStore {
	executionContext, ok := GetExecutionContextFromContext(ctx)
	if !ok {
		return store
	}

	environment := logs_core.Environment{
		Origin:    executionContext.Origin,
		AgentInfo: store.Environment().AgentInfo,
	}
	if userAgent := ctx.GetHeader("User-Agent"); userAgent != "" {
		environment.AgentInfo = userAgent
	}

	return store.WithEnvironment(environment)
}
