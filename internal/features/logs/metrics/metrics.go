package logs_metrics

import (
	"errors"
	"strconv"
	"time"

	logs_core "extlog/internal/features/logs/core"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var histogramBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}

// LogMetrics counts what happens to log entries and to the HTTP requests
// carrying them.
type LogMetrics struct {
	storedTotal    *prometheus.CounterVec
	rejectedTotal  *prometheus.CounterVec
	requestTotal   *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

func NewLogMetrics(registerer prometheus.Registerer) *LogMetrics {
	m := &LogMetrics{
		storedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "extlog",
			Subsystem: "logs",
			Name:      "stored_total",
			Help:      "Count of log entries persisted to the store",
		}, []string{"level", "context"}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "extlog",
			Subsystem: "logs",
			Name:      "rejected_total",
			Help:      "Count of log entries that were not persisted",
		}, []string{"level", "reason"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "extlog",
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Count of processed HTTP requests",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "extlog",
			Subsystem: "api",
			Name:      "http_request_duration_seconds",
			Help:      "Latency distribution of HTTP handlers",
			Buckets:   histogramBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.storedTotal = registerCounter(registerer, m.storedTotal)
	m.rejectedTotal = registerCounter(registerer, m.rejectedTotal)
	m.requestTotal = registerCounter(registerer, m.requestTotal)
	m.requestLatency = registerHistogram(registerer, m.requestLatency)

	return m
}

func (m *LogMetrics) OnLogStored(entry *logs_core.LogEntry) {
	m.storedTotal.WithLabelValues(string(entry.Level), contextLabel(entry.Context)).Inc()
}

func (m *LogMetrics) OnLogRejected(level logs_core.LogLevel, reason logs_core.RejectReason) {
	if !level.IsValid() {
		level = "UNKNOWN"
	}
	m.rejectedTotal.WithLabelValues(string(level), string(reason)).Inc()
}

// InstrumentMiddleware records count and latency per matched route.
func (m *LogMetrics) InstrumentMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}

		labels := prometheus.Labels{
			"method": ctx.Request.Method,
			"route":  route,
			"status": strconv.Itoa(ctx.Writer.Status()),
		}
		m.requestTotal.With(labels).Inc()
		m.requestLatency.With(labels).Observe(time.Since(start).Seconds())
	}
}

// contextLabel keeps label cardinality bounded: free-form contexts are
// folded into one value.
func contextLabel(context string) string {
	switch context {
	case "":
		return "none"
	case logs_core.ContextUserAction,
		logs_core.ContextSystem,
		logs_core.ContextAPICall,
		logs_core.ContextChromeAPI,
		logs_core.ContextScraping,
		logs_core.ContextOnboarding:
		return context
	default:
		return "other"
	}
}

func registerCounter(registerer prometheus.Registerer, collector *prometheus.CounterVec) *prometheus.CounterVec {
	if err := registerer.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, collector *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := registerer.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return collector
}
