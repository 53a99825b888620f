// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"io"
	"testing"

	"budget-backend/internal/config"
	"budget-backend/internal/database"
	"budget-backend/internal/logging"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database that lives for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    "file::memory:?_foreign_keys=on",
		LogLevel:       "error",
	}
	db, err := database.Open(cfg, logging.NewWithWriter(io.Discard, "error", "text"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
