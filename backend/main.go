// ABOUTME: Entry point for the spring design calculator backend service
// ABOUTME: Serves the spring search API with graceful shutdown

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/cache"
	"github.com/Kevin-Gith/spring-design-calculator/backend/config"
	"github.com/Kevin-Gith/spring-design-calculator/backend/handlers"
	"github.com/Kevin-Gith/spring-design-calculator/backend/logger"
	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize structured logging
	logger.Init()

	config.LoadDotEnv(os.Getenv("ENV_FILE"))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Spring Design Calculator Backend")
	slog.Info("Sweep configured",
		"scoring", cfg.ScoringMode,
		"coil_step", cfg.CoilStep,
		"min_score", cfg.MinScore,
		"shear_modulus", cfg.ShearModulus,
	)
	if cfg.AuthMode == config.AuthModeRequired {
		slog.Info("Access key required for spring endpoints", "token_ttl", cfg.TokenTTL)
	} else {
		slog.Warn("Authentication disabled, spring endpoints are open")
	}

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New[models.SearchResult](ctx, cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	h := handlers.NewHandler(cfg, c)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
