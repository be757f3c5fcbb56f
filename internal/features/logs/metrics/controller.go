package logs_metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsController struct {
	gatherer prometheus.Gatherer
}

func (c *MetricsController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})))
}
