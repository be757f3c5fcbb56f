package logs_stream

import (
	"log/slog"
	"net/http"

	"extlog/internal/config"
	logs_core "extlog/internal/features/logs/core"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type StreamController struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewStreamController(hub *Hub, logger *slog.Logger) *StreamController {
	return &StreamController{
		hub: hub,
		upgrader: websocket.Upgrader{
			// the popup and content scripts connect from extension and page origins
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (c *StreamController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/logs/stream", c.StreamLogs)
}

// StreamLogs
// @Summary Stream stored log entries
// @Description Upgrade to a websocket that receives every newly stored entry as one JSON message
// @Tags logs
// @Param level query string false "Only stream entries of this level"
// @Success 101
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /logs/stream [get]
func (c *StreamController) StreamLogs(ctx *gin.Context) {
	if config.IsShouldShutdown() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server is shutting down"})
		return
	}

	var level logs_core.LogLevel
	if levelParam := ctx.Query("level"); levelParam != "" {
		parsed, ok := logs_core.ParseLogLevel(levelParam)
		if !ok {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log level"})
			return
		}
		level = parsed
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := NewClient(conn, c.logger)
	c.hub.Register(level, client)

	go func() {
		defer func() {
			c.hub.Unregister(level, client)
			client.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
