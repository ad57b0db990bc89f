// Package main is the entry point for the Theme Gate server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"themegate/internal/cache"
	"themegate/internal/config"
	"themegate/internal/database"
	"themegate/internal/handlers"
	"themegate/internal/pipeline"
	"themegate/internal/router"
	"themegate/internal/store"
)

func main() {
	// Structured logger to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"repo", cfg.RepoURL,
		"base_branch", cfg.BaseBranch,
	)

	// Connect to PostgreSQL for the audit store. Optional in development:
	// the gateway still submits without it, it just records nothing.
	var submissionStore *store.SubmissionStore
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		if !cfg.IsDev() {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		slog.Warn("database unavailable — audit trail disabled", "error", err)
	} else {
		defer db.Close()
		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}
		submissionStore = store.NewSubmissionStore(db)
	}

	// Connect to Valkey for the in-flight submission guard. Also optional:
	// without it, duplicate submissions race unguarded.
	var guard *cache.SubmitGuard
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		if !cfg.IsDev() {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		slog.Warn("valkey unavailable — in-flight guard disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		guard = cache.NewSubmitGuard(valkeyClient, cache.DefaultGuardTTL)
	}

	// The pipeline runner holds the gallery repository parameters and the
	// bot identity; the PR client talks to the GitHub API.
	runner := pipeline.New(pipeline.Config{
		RepoURL:     cfg.RepoURL,
		BaseBranch:  cfg.BaseBranch,
		DataDir:     cfg.DataDir,
		BotName:     cfg.BotName,
		BotEmail:    cfg.BotEmail,
		BotUsername: cfg.BotUsername,
		Token:       cfg.GitHubToken,
		CloneDepth:  cfg.CloneDepth,
	}, pipeline.NewGitHubPR(cfg.GitHubToken, cfg.RepoOwner, cfg.RepoName))

	subs := handlers.NewSubmissions(runner, submissionStore, guard)

	// Set up the Chi router with all middleware and routes.
	r, limiter := router.New(subs, cfg.SubmitKeyHash)
	defer limiter.Stop()

	// WriteTimeout must accommodate a full clone-commit-push-PR round trip
	// against the gallery repository.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give in-flight submissions time to finish their push and PR.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
