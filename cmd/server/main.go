package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budget-backend/internal/api"
	"budget-backend/internal/audit"
	"budget-backend/internal/budget"
	"budget-backend/internal/config"
	"budget-backend/internal/database"
	"budget-backend/internal/logging"
	"budget-backend/internal/store"
	"budget-backend/internal/web"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		// logger settings may be the invalid part, so fall back to defaults
		logging.New("info", "text").Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	auditLog := audit.NewLog(db)
	svc := budget.NewService(store.New(db), auditLog, logger)

	opts := api.Options{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Service: svc,
		Audit:   auditLog,
	}
	if cfg.UIEnabled {
		engine, err := web.NewEngine()
		if err != nil {
			logger.Error("failed to load templates", "error", err)
			os.Exit(1)
		}
		opts.Views = engine
		opts.ViewsLayout = web.Layout
	}

	app := api.NewApp(opts)
	if cfg.UIEnabled {
		if err := web.Register(app, svc, logger); err != nil {
			logger.Error("failed to mount web pages", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting budget server",
		"addr", cfg.Addr(),
		"driver", cfg.DatabaseDriver,
		"ui", cfg.UIEnabled,
		"guarded", cfg.JWTSecret != "",
	)
	if err := app.Listen(cfg.Addr()); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped gracefully")
}
