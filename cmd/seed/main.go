package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"
	"budget-backend/internal/budget"
	"budget-backend/internal/config"
	"budget-backend/internal/database"
	"budget-backend/internal/logging"
	"budget-backend/internal/store"
)

var defaultEvents = []budget.CreateEventInput{
	{Code: "1Q", Name: "1Q", Order: 1},
	{Code: "2Q", Name: "2Q", Order: 2},
	{Code: "3Q", Name: "3Q", Order: 3},
	{Code: "4Q", Name: "4Q", Order: 4},
	{Code: "利計標準", Name: "利計標準", Order: 5},
	{Code: "利計中間", Name: "利計中間", Order: 6},
	{Code: "利計最終", Name: "利計最終", Order: 7},
}

var defaultCategories = []budget.CreateExpenseCategoryInput{
	{Code: "TRAVEL", Name: "旅費交通費"},
	{Code: "MEAL", Name: "会議費"},
	{Code: "SUPPLY", Name: "消耗品費"},
	{Code: "OUTSOURCE", Name: "外注費"},
	{Code: "AD", Name: "広告宣伝費"},
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
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

	svc := budget.NewService(store.New(db), audit.NewLog(db), logger)
	created, err := seed(context.Background(), svc, logger)
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed", "created", created)
}

// seed creates the default events and categories. Codes that are already
// active are left alone, so running it twice is harmless.
func seed(ctx context.Context, svc *budget.Service, logger *slog.Logger) (int, error) {
	ctx = audit.WithActor(ctx, "seed")
	created := 0

	for _, in := range defaultEvents {
		_, err := svc.CreateEvent(ctx, in)
		switch {
		case errors.Is(err, apperr.ErrConflict):
			logger.Debug("event already exists", "code", in.Code)
		case err != nil:
			return created, err
		default:
			created++
		}
	}

	for _, in := range defaultCategories {
		_, err := svc.CreateExpenseCategory(ctx, in)
		switch {
		case errors.Is(err, apperr.ErrConflict):
			logger.Debug("expense category already exists", "code", in.Code)
		case err != nil:
			return created, err
		default:
			created++
		}
	}
	return created, nil
}
