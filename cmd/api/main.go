package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Elisha-Seme/assetqr/internal/app"
	"github.com/Elisha-Seme/assetqr/internal/config"
	handlers "github.com/Elisha-Seme/assetqr/internal/http/handler"
	"github.com/Elisha-Seme/assetqr/internal/http/middleware"
	"github.com/Elisha-Seme/assetqr/internal/logger"
	"github.com/Elisha-Seme/assetqr/internal/otel"
)

// @title Asset QR Registry API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	log := logger.New(os.Stdout, logger.LoadLocation(cfg.Timezone), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Error("startup_failed", "event", "startup_failed", "stage", "tracing", "error_message", err.Error())
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry, err := app.New(ctx, cfg, log, reg)
	if err != nil {
		log.Error("startup_failed", "event", "startup_failed", "stage", "app", "error_message", err.Error())
		os.Exit(1)
	}
	defer registry.Close()

	prom, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Error("startup_failed", "event", "startup_failed", "stage", "metrics", "error_message", err.Error())
		os.Exit(1)
	}

	server := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             16 * 1024 * 1024,
		DisableStartupMessage: true,
	})

	// Register global middleware
	server.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	server.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	server.Use(middleware.Logger(log))
	server.Use(prom.Handler())

	handlers.RegisterRoutes(server, handlers.Deps{
		DB:        registry.DB,
		Assets:    registry.Assets,
		Settings:  registry.Configure,
		Reports:   registry.Reports,
		Artifacts: registry.Artifacts,
		Gatherer:  reg,
	})

	go func() {
		<-ctx.Done()
		log.Info("server_stopping", "event", "server_stopping")
		if err := server.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server_shutdown_failed", "event", "server_shutdown_failed", "error_message", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting", "event", "server_starting", "addr", addr)
	if err := server.Listen(addr); err != nil {
		log.Error("server_failed", "event", "server_failed", "error_message", err.Error())
		os.Exit(1)
	}
}
