package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"extlog/internal/config"
	"extlog/internal/downdetect"
	"extlog/internal/features/contexts"
	logs_api "extlog/internal/features/logs/api"
	logs_cleanup "extlog/internal/features/logs/cleanup"
	logs_core "extlog/internal/features/logs/core"
	logs_metrics "extlog/internal/features/logs/metrics"
	logs_stream "extlog/internal/features/logs/stream"
	"extlog/internal/features/relay"
	"extlog/internal/features/scanner"
	system_healthcheck "extlog/internal/features/system/healthcheck"
	"extlog/internal/storage"
	env_utils "extlog/internal/util/env"
	"extlog/internal/util/logger"
	_ "extlog/swagger" // swagger docs

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Extension Log Store API
// @version 1.0
// @description Bounded, level-filtered log store of the job search extension
// @termsOfService http://swagger.io/terms/

// @host localhost:4005
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.GetLogger()

	exportFormat := flag.String(
		"export",
		"",
		"Print every stored log entry as json or yaml and exit. Needs a persistent STORAGE_BACKEND",
	)
	flag.Parse()

	if *exportFormat != "" {
		err := validateExportRequest(config.GetEnv().StorageBackend, logs_core.ExportFormat(*exportFormat))
		if err != nil {
			log.Error("Cannot export logs", "error", err)
			os.Exit(1)
		}
	}

	config.StartListeningForShutdownSignal()

	runMigrations(log)
	testStorageConnection(log)

	if *exportFormat != "" {
		exportLogs(log, logs_core.ExportFormat(*exportFormat))
		return
	}

	setUpDependencies()

	gin.SetMode(gin.ReleaseMode)
	ginApp := gin.New()
	ginApp.Use(gin.Recovery())

	ginApp.Use(gzip.Gzip(
		gzip.DefaultCompression,
		// exports may already be zstd-compressed, and websocket upgrades must not be wrapped
		gzip.WithExcludedExtensions([]string{".zst"}),
		gzip.WithExcludedPaths([]string{"/api/v1/logs/stream"}),
	))

	enableCors(ginApp)
	ginApp.Use(logs_metrics.GetLogMetrics().InstrumentMiddleware())
	setUpRoutes(ginApp)
	runBackgroundTasks(log)

	logs_core.GetLogStore().SystemEvent(context.Background(), "service started", map[string]any{
		"storageBackend": config.GetEnv().StorageBackend,
		"capacity":       config.GetEnv().LogsCapacity,
	})

	startServerWithGracefulShutdown(log, ginApp)
}

func startServerWithGracefulShutdown(log *slog.Logger, app *gin.Engine) {
	host := ""
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		// for dev we use localhost to avoid firewall
		// requests on each run for Windows
		host = "127.0.0.1"
	}

	srv := &http.Server{
		Addr:              host + ":" + config.GetEnv().ServerPort,
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen:", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	logs_cleanup.GetLogCleanupBackgroundService().StopWorkers()
	// open websocket streams are hijacked and not tracked by Shutdown
	logs_stream.GetHub().Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown:", "error", err)
	}

	log.Info("Server gracefully stopped")
}

func setUpRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/docs/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	downdetect.GetDowndetectController().RegisterRoutes(v1)
	system_healthcheck.GetHealthcheckController().RegisterRoutes(v1)
	contexts.GetContextController().RegisterRoutes(v1)
	logs_metrics.GetMetricsController().RegisterRoutes(v1)
	logs_stream.GetStreamController().RegisterRoutes(v1)

	// Routes acting on behalf of an execution context. Requests without a
	// token act as the background context.
	contextual := v1.Group("")
	contextual.Use(contexts.ContextMiddleware(contexts.GetContextService()))

	logs_api.GetLogsController().RegisterRoutes(contextual)
	relay.GetRelayController().RegisterRoutes(contextual)
	scanner.GetScannerController().RegisterRoutes(contextual)
}

func setUpDependencies() {
	logs_stream.SetupDependencies()
	logs_metrics.SetupDependencies()
}

func runBackgroundTasks(log *slog.Logger) {
	log.Info("Preparing to run background tasks...")

	logs_cleanup.GetLogCleanupBackgroundService().StartWorkers()

	log.Info("Background tasks started successfully")
}

func runMigrations(log *slog.Logger) {
	if config.GetEnv().StorageBackend != config.StorageBackendPostgres {
		return
	}

	log.Info("Running database migrations...")

	if err := storage.RunMigrations(context.Background(), config.GetEnv().DatabaseDsn, log); err != nil {
		log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	log.Info("Database migrations completed successfully")
}

func testStorageConnection(log *slog.Logger) {
	log.Info("Testing storage connection...", "backend", config.GetEnv().StorageBackend)

	if err := downdetect.GetDowndetectService().IsAvailable(context.Background()); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	log.Info("Storage connection test successful")
}

// validateExportRequest rejects exports that could only print an empty list:
// the memory backend starts empty in every process.
func validateExportRequest(backend string, format logs_core.ExportFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("unknown export format %q, use json or yaml", format)
	}

	if backend == config.StorageBackendMemory || backend == "" {
		return errors.New("the memory backend keeps no logs between runs, set STORAGE_BACKEND to valkey, redis or postgres")
	}

	return nil
}

func exportLogs(log *slog.Logger, format logs_core.ExportFormat) {
	result := logs_core.GetLogStore().ExportLogsAs(context.Background(), format)
	if result.Err != nil {
		log.Error("Failed to export logs", "error", result.Err)
		os.Exit(1)
	}

	fmt.Println(result.Value)
}

func enableCors(ginApp *gin.Engine) {
	if config.GetEnv().EnvMode == env_utils.EnvModeDevelopment {
		ginApp.Use(cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
			AllowHeaders: []string{
				"Origin",
				"Content-Length",
				"Content-Type",
				"Authorization",
				"Accept",
				"Accept-Language",
				"Accept-Encoding",
				"Access-Control-Request-Method",
				"Access-Control-Request-Headers",
			},
		}))
	}
}
