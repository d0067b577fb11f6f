package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bilancio/internal/cache"
	"bilancio/internal/config"
	apphttp "bilancio/internal/http"
	applog "bilancio/internal/log"
	"bilancio/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A .env file is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.Setup(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if cfg.IsDevelopment() {
		logger.Debug("Loaded configuration",
			"port", cfg.Port,
			"store", cfg.StorePath,
			"export_dir", cfg.ExportDir,
			"summary_cache_ttl", cfg.SummaryCacheTTL)
	}

	store, err := storage.Open(cfg.StorePath)
	if err != nil {
		logger.Error("Failed to open store", "error", err, "path", cfg.StorePath)
		os.Exit(1)
	}

	budgets := storage.NewBudgets(store)
	payments := storage.NewPayments(store)
	states := storage.NewAppStates(store)

	srv := apphttp.NewServer(":"+cfg.Port, budgets, payments, states, cfg.SummaryCacheTTL, logger)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting bilancio server",
			applog.FieldComponent, applog.ComponentApp,
			"port", cfg.Port,
			"store", cfg.StorePath,
			"env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		janitor := cache.NewJanitor(time.Minute, srv.Caches()...)
		return janitor.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
