package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"budget-backend/internal/config"
	"budget-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database. Unique and foreign-key
// violations are translated to gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger, cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DatabaseDriver, err)
	}

	if cfg.DatabaseDriver == config.DriverSQLite {
		// sqlite allows a single writer; one connection also keeps in-memory databases alive.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates every table, the partial unique indexes on
// active codes and the foreign keys between budget items and their references.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Event{},
		&models.ExpenseCategory{},
		&models.BudgetItem{},
		&models.BudgetMonthly{},
		&models.ActualMonthly{},
		&models.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Ping runs a trivial query against the database.
func Ping(ctx context.Context, db *gorm.DB) error {
	var one int
	return db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error
}

func newGormLogger(logger *slog.Logger, level string) gormlogger.Interface {
	gormLevel, slogLevel := gormlogger.Warn, slog.LevelWarn
	if level == "debug" {
		gormLevel, slogLevel = gormlogger.Info, slog.LevelDebug
	}
	return gormlogger.New(
		slog.NewLogLogger(logger.Handler(), slogLevel),
		gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLevel,
			IgnoreRecordNotFoundError: true,
		},
	)
}
