package main

import (
	"context"
	"io"
	"testing"

	"budget-backend/internal/audit"
	"budget-backend/internal/budget"
	"budget-backend/internal/logging"
	"budget-backend/internal/store"
	"budget-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsRepeatable(t *testing.T) {
	db := testutil.NewDB(t)
	logger := logging.NewWithWriter(io.Discard, "error", "text")
	auditLog := audit.NewLog(db)
	svc := budget.NewService(store.New(db), auditLog, logger)
	ctx := context.Background()

	created, err := seed(ctx, svc, logger)
	require.NoError(t, err)
	assert.Equal(t, len(defaultEvents)+len(defaultCategories), created)

	created, err = seed(ctx, svc, logger)
	require.NoError(t, err)
	assert.Zero(t, created)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 7)
	assert.Equal(t, "1Q", events[0].Code)
	assert.Equal(t, "利計最終", events[6].Code)

	categories, err := svc.ListExpenseCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 5)

	logs, err := auditLog.List(ctx, audit.Filter{EntityType: audit.EntityEvent})
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	assert.Equal(t, "seed", logs[0].Actor)
}
