// Package store is the persistence gateway: one small repository per record
// kind, all backed by GORM. Every read goes through the Active scope so
// soft-deleted rows never leak into listings or reference checks.
package store

import (
	"context"
	"errors"

	"budget-backend/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	Events            EventRepository
	ExpenseCategories ExpenseCategoryRepository
	BudgetItems       BudgetItemRepository
	BudgetMonthlies   MonthlyRepository
	ActualMonthlies   MonthlyRepository
}

func New(db *gorm.DB) *Store {
	return &Store{
		Events:            NewEventRepository(db),
		ExpenseCategories: NewExpenseCategoryRepository(db),
		BudgetItems:       NewBudgetItemRepository(db),
		BudgetMonthlies:   NewBudgetMonthlyRepository(db),
		ActualMonthlies:   NewActualMonthlyRepository(db),
	}
}

// Active restricts a query to rows whose del_flg is false.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "del_flg"},
		Value:  false,
	})
}

func translate(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s code already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.NotFound("record referenced by %s not found", entity)
	default:
		return err
	}
}

func getActive[T any](ctx context.Context, db *gorm.DB, id, entity string) (*T, error) {
	var row T
	err := db.WithContext(ctx).Scopes(Active).Where("id = ?", id).Take(&row).Error
	if err != nil {
		return nil, translate(err, entity)
	}
	return &row, nil
}

func getActiveByCode[T any](ctx context.Context, db *gorm.DB, code, entity string) (*T, error) {
	var row T
	err := db.WithContext(ctx).Scopes(Active).Where("code = ?", code).Take(&row).Error
	if err != nil {
		return nil, translate(err, entity)
	}
	return &row, nil
}

// codeTaken reports whether an active row other than excludeID uses code.
func codeTaken[T any](ctx context.Context, db *gorm.DB, code, excludeID string) (bool, error) {
	q := db.WithContext(ctx).Model(new(T)).Scopes(Active).Where("code = ?", code)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// softDelete flips del_flg. Deleting an already deleted row is a no-op;
// only an id that never existed is NotFound.
func softDelete[T any](ctx context.Context, db *gorm.DB, id, entity string) error {
	var row T
	if err := db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return translate(err, entity)
	}
	return db.WithContext(ctx).Model(&row).
		Where("del_flg = ?", false).
		Update("del_flg", true).Error
}

// applyPatch writes the non-empty update set to an active row and reloads it.
func applyPatch[T any](ctx context.Context, db *gorm.DB, id, entity string, updates map[string]any) (*T, error) {
	if len(updates) > 0 {
		err := db.WithContext(ctx).Model(new(T)).Scopes(Active).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			return nil, translate(err, entity)
		}
	}
	return getActive[T](ctx, db, id, entity)
}
