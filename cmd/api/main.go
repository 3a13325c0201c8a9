package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pintudigital/contact-api/internal/api/router"
	"github.com/pintudigital/contact-api/internal/app/bootstrap"
	appconfig "github.com/pintudigital/contact-api/internal/config"
	"github.com/pintudigital/contact-api/internal/contact"
	"github.com/pintudigital/contact-api/internal/observability/metrics"
	"github.com/pintudigital/contact-api/internal/ratelimit"
	"github.com/pintudigital/contact-api/pkg/logging"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel, cfg.Env)
	logger.Info("starting contact-api server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Rate limiter backend
	var limiter ratelimit.Limiter
	if cfg.RateLimitBackend == "redis" {
		redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
		limiter = ratelimit.NewRedisFixedWindow(redisClient, cfg.RateLimitMaxRequests, cfg.RateLimitWindow, logger)
	} else {
		limiter = ratelimit.NewFixedWindow(cfg.RateLimitMaxRequests, cfg.RateLimitWindow)
	}

	// Outbound email
	sender := bootstrap.BuildEmailSender(ctx, cfg, logger)
	if sender == nil {
		logger.Error("no email provider configured; submissions will be rejected until one is set")
	}

	contactMetrics := metrics.NewContactMetrics(nil)

	contactHandler := contact.NewHandler(limiter, sender, contactMetrics, contact.HandlerConfig{
		ToEmail:       cfg.ContactToEmail,
		SendTimeout:   cfg.EmailSendTimeout,
		ExemptUnknown: cfg.RateLimitExemptUnknown,
	}, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		ContactHandler:     contactHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
