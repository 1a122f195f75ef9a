package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/n8Develop/shepherd/internal/api"
	"github.com/n8Develop/shepherd/internal/config"
	"github.com/n8Develop/shepherd/internal/orchestrator"
	"github.com/n8Develop/shepherd/internal/process"
	"github.com/n8Develop/shepherd/internal/queue"
	"github.com/n8Develop/shepherd/internal/tools"
)

const version = "0.1.0"

func main() {
	cfg := config.Load()

	// Logger
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Storage layout
	paths := queue.Default()
	if err := paths.EnsureDirs(); err != nil {
		logger.Error("failed to create data directories", "root", paths.Root(), "error", err)
		os.Exit(1)
	}

	// Stores
	sessionStore := queue.NewSessionStore(paths)
	verificationStore := queue.NewVerificationStore(paths)
	feedbackStore := queue.NewFeedbackStore(paths)

	// Team presets
	registry, err := config.LoadTeams(paths.Root())
	if err != nil {
		logger.Warn("team presets unavailable", "error", err)
	}

	// Process supervisor and orchestrator
	supervisor := process.New(paths, logger)
	orch := orchestrator.NewService(paths, sessionStore, supervisor, registry, logger)

	// MCP surface
	mcpServer := server.NewMCPServer("shepherd", version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tools.Register(mcpServer, orch, sessionStore, verificationStore, feedbackStore, supervisor)
	mcpHTTP := server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))

	// Router
	router := api.NewRouter(orch, sessionStore, verificationStore, feedbackStore, supervisor, registry, mcpHTTP, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("shepherd listening",
			"addr", addr,
			"dataDir", paths.Root(),
			"mcpEndpoint", "POST /mcp",
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
