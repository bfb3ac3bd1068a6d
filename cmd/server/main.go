package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pdf-summarizer/internal/config"
	"pdf-summarizer/internal/handler"
	"pdf-summarizer/pkg/logger"
	"pdf-summarizer/pkg/telemetry"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	bootLogger := logger.NewLogger("info", "text")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		bootLogger.Warn(".env file not found or could not be loaded", "error", err)
	}

	// Wiring
	container, err := config.NewContainer()
	if err != nil {
		bootLogger.Error("Invalid configuration", err)
		os.Exit(1)
	}
	cfg := container.GetConfig()
	appLogger := container.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.GetServiceName(),
		Disable:     !cfg.GetTracingEnabled(),
		Endpoint:    cfg.GetOTLPEndpoint(),
		Logger:      appLogger,
	})
	if err != nil {
		appLogger.Error("Failed to initialize tracing", err)
		os.Exit(1)
	}

	// Handlers
	summarizeHandler := handler.NewSummarizeHandler(
		container.GetSummaryService(),
		cfg.GetMaxFileSize(),
		appLogger,
	)
	indexHandler := handler.NewIndexHandler(cfg.GetMaxFileSize(), appLogger)

	// Router
	router := handler.NewRouter(
		summarizeHandler,
		indexHandler,
		appLogger,
		cfg.GetAllowedOrigins(),
	)

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute,
		// uploads plus a full upstream retry cycle
		WriteTimeout: cfg.GetUpstreamTimeout()*time.Duration(cfg.GetUpstreamMaxAttempts()) + time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		appLogger.Info("Server listening", "address", server.Addr, "engine", cfg.GetPDFEngine())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if tracingErr := shutdownTracing(shutdownCtx); tracingErr != nil {
			appLogger.Warn("Failed to flush traces", "error", tracingErr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server failed", err)
		os.Exit(1)
	}

	appLogger.Info("Server exited")
}
