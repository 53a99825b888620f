package budget

import (
	"context"
	"fmt"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"
	"budget-backend/internal/models"
	"budget-backend/internal/store"
)

func (s *Service) ListBudgetItems(ctx context.Context, q BudgetItemQuery) ([]models.BudgetItem, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, err
	}
	return s.store.BudgetItems.List(ctx, q.filter())
}

func (s *Service) GetBudgetItem(ctx context.Context, id string) (*models.BudgetItem, error) {
	return s.store.BudgetItems.GetActive(ctx, id)
}

func (s *Service) CreateBudgetItem(ctx context.Context, in CreateBudgetItemInput) (*models.BudgetItem, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if err := s.requireReferences(ctx, &in.EventID, &in.ExpenseCategoryID); err != nil {
		return nil, err
	}

	item := &models.BudgetItem{
		FiscalYear:        in.FiscalYear,
		Code:              in.Code,
		Name:              in.Name,
		EventID:           in.EventID,
		ExpenseCategoryID: in.ExpenseCategoryID,
	}
	if err := s.store.BudgetItems.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create budget item: %w", err)
	}

	created, err := s.store.BudgetItems.GetActive(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("reload budget item: %w", err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityBudgetItem,
		EntityID:    created.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("created budget item %s", created.Code),
		After:       NewBudgetItemResponse(*created),
	})
	return created, nil
}

// UpdateBudgetItem merges the supplied fields. The resulting event and
// expense category must both be active, whether or not the patch changes them.
func (s *Service) UpdateBudgetItem(ctx context.Context, id string, in UpdateBudgetItemInput) (*models.BudgetItem, error) {
	in.normalize()
	if in.empty() {
		return nil, apperr.Validation("at least one field to update is required")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	before, err := s.store.BudgetItems.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	eventID, categoryID := before.EventID, before.ExpenseCategoryID
	if in.EventID != nil {
		eventID = *in.EventID
	}
	if in.ExpenseCategoryID != nil {
		categoryID = *in.ExpenseCategoryID
	}
	if err := s.requireReferences(ctx, &eventID, &categoryID); err != nil {
		return nil, err
	}

	after, err := s.store.BudgetItems.Update(ctx, id, store.BudgetItemPatch{
		FiscalYear:        in.FiscalYear,
		Code:              in.Code,
		Name:              in.Name,
		EventID:           in.EventID,
		ExpenseCategoryID: in.ExpenseCategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("update budget item: %w", err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityBudgetItem,
		EntityID:    id,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("updated budget item %s", after.Code),
		Before:      NewBudgetItemResponse(*before),
		After:       NewBudgetItemResponse(*after),
	})
	return after, nil
}

func (s *Service) DeleteBudgetItem(ctx context.Context, id string) (*models.BudgetItem, error) {
	item, err := s.store.BudgetItems.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.BudgetItems.SoftDelete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete budget item: %w", err)
	}

	before := NewBudgetItemResponse(*item)
	item.DelFlg = true
	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityBudgetItem,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("deleted budget item %s", item.Code),
		Before:      before,
		After:       NewBudgetItemResponse(*item),
	})
	return item, nil
}

// ===== Finalization =====

// FinalizeActual locks the actual amounts of an item and stamps the time.
// Finalizing a finalized item returns it unchanged.
func (s *Service) FinalizeActual(ctx context.Context, id string) (*models.BudgetItem, error) {
	return s.setFinalized(ctx, id, true)
}

// UnfinalizeActual reopens the actual amounts and clears the timestamp.
func (s *Service) UnfinalizeActual(ctx context.Context, id string) (*models.BudgetItem, error) {
	return s.setFinalized(ctx, id, false)
}

func (s *Service) setFinalized(ctx context.Context, id string, finalized bool) (*models.BudgetItem, error) {
	item, err := s.store.BudgetItems.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.ActualFinalizedFlg == finalized {
		return item, nil
	}

	action := models.AuditActionUnfinalize
	var updated *models.BudgetItem
	if finalized {
		action = models.AuditActionFinalize
		now := s.now()
		updated, err = s.store.BudgetItems.SetFinalized(ctx, id, &now)
	} else {
		updated, err = s.store.BudgetItems.SetFinalized(ctx, id, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("%s budget item: %w", action, err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityBudgetItem,
		EntityID:    id,
		Action:      action,
		Description: fmt.Sprintf("%s actual amounts of budget item %s", action, updated.Code),
		Before:      NewBudgetItemResponse(*item),
		After:       NewBudgetItemResponse(*updated),
	})
	return updated, nil
}

// requireReferences checks that the given event and expense category exist
// and are active. Nil ids are skipped.
func (s *Service) requireReferences(ctx context.Context, eventID, categoryID *string) error {
	if eventID != nil {
		if _, err := s.store.Events.GetActive(ctx, *eventID); err != nil {
			return err
		}
	}
	if categoryID != nil {
		if _, err := s.store.ExpenseCategories.GetActive(ctx, *categoryID); err != nil {
			return err
		}
	}
	return nil
}
