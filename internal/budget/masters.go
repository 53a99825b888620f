package budget

import (
	"context"
	"fmt"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"
	"budget-backend/internal/models"
	"budget-backend/internal/store"
)

// ===== Events =====

func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.store.Events.List(ctx)
}

func (s *Service) CreateEvent(ctx context.Context, in CreateEventInput) (*models.Event, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	event := &models.Event{Code: in.Code, Name: in.Name, Order: in.Order}
	if err := s.store.Events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityEvent,
		EntityID:    event.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("created event %s", event.Code),
		After:       NewEventResponse(*event),
	})
	return event, nil
}

// UpdateEvent edits an event. The code is frozen while active budget items
// reference the event; name and order stay editable.
func (s *Service) UpdateEvent(ctx context.Context, id string, in UpdateEventInput) (*models.Event, error) {
	in.normalize()
	if in.empty() {
		return nil, apperr.Validation("at least one of eventCode, eventName, eventOrder is required")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	before, err := s.store.Events.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Code != nil && *in.Code != before.Code {
		refs, err := s.store.BudgetItems.CountActiveByEvent(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("count budget items of event: %w", err)
		}
		if refs > 0 {
			return nil, apperr.Conflict("eventCode cannot change while %d budget items reference the event", refs)
		}
	}

	after, err := s.store.Events.Update(ctx, id, store.EventPatch{Code: in.Code, Name: in.Name, Order: in.Order})
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityEvent,
		EntityID:    id,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("updated event %s", after.Code),
		Before:      NewEventResponse(*before),
		After:       NewEventResponse(*after),
	})
	return after, nil
}

// DeleteEvent soft-deletes an active event and returns it. Budget items that
// reference it keep the reference.
func (s *Service) DeleteEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.store.Events.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Events.SoftDelete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete event: %w", err)
	}

	before := NewEventResponse(*event)
	event.DelFlg = true
	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityEvent,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("deleted event %s", event.Code),
		Before:      before,
		After:       NewEventResponse(*event),
	})
	return event, nil
}

// ===== Expense categories =====

func (s *Service) ListExpenseCategories(ctx context.Context) ([]models.ExpenseCategory, error) {
	return s.store.ExpenseCategories.List(ctx)
}

func (s *Service) CreateExpenseCategory(ctx context.Context, in CreateExpenseCategoryInput) (*models.ExpenseCategory, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	category := &models.ExpenseCategory{Code: in.Code, Name: in.Name}
	if err := s.store.ExpenseCategories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create expense category: %w", err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityExpenseCategory,
		EntityID:    category.ID,
		Action:      models.AuditActionCreate,
		Description: fmt.Sprintf("created expense category %s", category.Code),
		After:       NewExpenseCategoryResponse(*category),
	})
	return category, nil
}

func (s *Service) UpdateExpenseCategory(ctx context.Context, id string, in UpdateExpenseCategoryInput) (*models.ExpenseCategory, error) {
	in.normalize()
	if in.empty() {
		return nil, apperr.Validation("expenseCategoryCode or expenseCategoryName is required")
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	before, err := s.store.ExpenseCategories.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	after, err := s.store.ExpenseCategories.Update(ctx, id, store.ExpenseCategoryPatch{Code: in.Code, Name: in.Name})
	if err != nil {
		return nil, fmt.Errorf("update expense category: %w", err)
	}

	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityExpenseCategory,
		EntityID:    id,
		Action:      models.AuditActionUpdate,
		Description: fmt.Sprintf("updated expense category %s", after.Code),
		Before:      NewExpenseCategoryResponse(*before),
		After:       NewExpenseCategoryResponse(*after),
	})
	return after, nil
}

func (s *Service) DeleteExpenseCategory(ctx context.Context, id string) (*models.ExpenseCategory, error) {
	category, err := s.store.ExpenseCategories.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.ExpenseCategories.SoftDelete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete expense category: %w", err)
	}

	before := NewExpenseCategoryResponse(*category)
	category.DelFlg = true
	s.record(ctx, audit.LogOptions{
		EntityType:  audit.EntityExpenseCategory,
		EntityID:    id,
		Action:      models.AuditActionDelete,
		Description: fmt.Sprintf("deleted expense category %s", category.Code),
		Before:      before,
		After:       NewExpenseCategoryResponse(*category),
	})
	return category, nil
}
