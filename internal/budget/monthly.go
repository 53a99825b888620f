package budget

import (
	"context"
	"fmt"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"
	"budget-backend/internal/models"
	"budget-backend/internal/store"
	"budget-backend/internal/validation"
)

func (s *Service) ListBudgetMonths(ctx context.Context, itemID string) ([]store.MonthAmount, error) {
	if _, err := s.store.BudgetItems.GetActive(ctx, itemID); err != nil {
		return nil, err
	}
	return s.store.BudgetMonthlies.List(ctx, itemID)
}

func (s *Service) ListActualMonths(ctx context.Context, itemID string) ([]store.MonthAmount, error) {
	if _, err := s.store.BudgetItems.GetActive(ctx, itemID); err != nil {
		return nil, err
	}
	return s.store.ActualMonthlies.List(ctx, itemID)
}

// UpsertBudgetMonths replaces all twelve budget amounts of an item. Budget
// amounts stay editable after the actuals are finalized.
func (s *Service) UpsertBudgetMonths(ctx context.Context, itemID string, in UpsertBudgetMonthsInput) ([]store.MonthAmount, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	rows := in.rows()
	if err := validation.MonthSet(monthsOf(rows)); err != nil {
		return nil, err
	}

	item, err := s.store.BudgetItems.GetActive(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.upsertMonths(ctx, item, s.store.BudgetMonthlies, audit.EntityBudgetMonthly, rows)
}

// UpsertActualMonths replaces all twelve actual amounts of an item. It is a
// Conflict while the item is finalized.
func (s *Service) UpsertActualMonths(ctx context.Context, itemID string, in UpsertActualMonthsInput) ([]store.MonthAmount, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	rows := in.rows()
	if err := validation.MonthSet(monthsOf(rows)); err != nil {
		return nil, err
	}

	item, err := s.store.BudgetItems.GetActive(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.ActualFinalizedFlg {
		return nil, apperr.Conflict("actual amounts of budget item %s are finalized", item.Code)
	}
	return s.upsertMonths(ctx, item, s.store.ActualMonthlies, audit.EntityActualMonthly, rows)
}

func (s *Service) upsertMonths(ctx context.Context, item *models.BudgetItem, repo store.MonthlyRepository, entityType string, rows []store.MonthAmount) ([]store.MonthAmount, error) {
	before, err := repo.List(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list %s rows: %w", entityType, err)
	}
	if err := repo.BulkUpsert(ctx, item.ID, rows); err != nil {
		return nil, err
	}
	after, err := repo.List(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("list %s rows: %w", entityType, err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  entityType,
		EntityID:    item.ID,
		Action:      models.AuditActionUpsert,
		Description: fmt.Sprintf("replaced %d monthly amounts of budget item %s", len(rows), item.Code),
		Before:      before,
		After:       after,
	})
	return after, nil
}
