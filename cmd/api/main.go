package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"customer-support-agent/config"
	"customer-support-agent/internal/app"
	"customer-support-agent/internal/httpserver"
	"customer-support-agent/internal/middleware"
	"customer-support-agent/pkg/log"
)

// @title       Customer Support Agent API
// @description Routes customer messages to policy answers, order lookups and human-approved refunds.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Customer Support Agent...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Domain wiring
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize components: ", err)
		return
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warnf(ctx, "Failed to close conversation store: %v", err)
		}
	}()
	logger.Infof(ctx, "Approval gate enabled: %v", cfg.Support.ApprovalGate)

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		SupportUseCase: a.Support,
		Middleware:     middleware.New(logger, cfg.RateLimit.PerMin),
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
