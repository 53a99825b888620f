package store

import (
	"context"
	"time"

	"budget-backend/internal/apperr"
	"budget-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BudgetItemFilter struct {
	FiscalYear          *int
	EventCode           string
	ExpenseCategoryCode string
}

type BudgetItemPatch struct {
	FiscalYear        *int
	Code              *string
	Name              *string
	EventID           *string
	ExpenseCategoryID *string
}

type BudgetItemRepository interface {
	// List returns active items with their references and active monthly rows.
	List(ctx context.Context, filter BudgetItemFilter) ([]models.BudgetItem, error)
	GetActive(ctx context.Context, id string) (*models.BudgetItem, error)
	Create(ctx context.Context, item *models.BudgetItem) error
	Update(ctx context.Context, id string, patch BudgetItemPatch) (*models.BudgetItem, error)
	// SetFinalized sets the flag when finalizedAt is non-nil and clears flag
	// and timestamp otherwise.
	SetFinalized(ctx context.Context, id string, finalizedAt *time.Time) (*models.BudgetItem, error)
	SoftDelete(ctx context.Context, id string) error
	CountActiveByEvent(ctx context.Context, eventID string) (int64, error)
}

type gormBudgetItemRepository struct {
	db *gorm.DB
}

func NewBudgetItemRepository(db *gorm.DB) BudgetItemRepository {
	return &gormBudgetItemRepository{db: db}
}

func withDetails(db *gorm.DB) *gorm.DB {
	activeMonths := func(tx *gorm.DB) *gorm.DB {
		return tx.Scopes(Active).Order("fiscal_month asc")
	}
	return db.
		Preload("Event").
		Preload("ExpenseCategory").
		Preload("BudgetMonthlies", activeMonths).
		Preload("ActualMonthlies", activeMonths)
}

func (r *gormBudgetItemRepository) List(ctx context.Context, filter BudgetItemFilter) ([]models.BudgetItem, error) {
	q := r.db.WithContext(ctx).Model(&models.BudgetItem{}).Scopes(Active, withDetails)

	if filter.FiscalYear != nil {
		q = q.Where("fiscal_year = ?", *filter.FiscalYear)
	}
	if filter.EventCode != "" {
		events := r.db.Model(&models.Event{}).Scopes(Active).Select("id").Where("code = ?", filter.EventCode)
		q = q.Where("event_id IN (?)", events)
	}
	if filter.ExpenseCategoryCode != "" {
		categories := r.db.Model(&models.ExpenseCategory{}).Scopes(Active).Select("id").Where("code = ?", filter.ExpenseCategoryCode)
		q = q.Where("expense_category_id IN (?)", categories)
	}

	var items []models.BudgetItem
	if err := q.Order("code asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *gormBudgetItemRepository) GetActive(ctx context.Context, id string) (*models.BudgetItem, error) {
	var item models.BudgetItem
	err := r.db.WithContext(ctx).Scopes(Active, withDetails).Where("id = ?", id).Take(&item).Error
	if err != nil {
		return nil, translate(err, "budget item")
	}
	return &item, nil
}

func (r *gormBudgetItemRepository) Create(ctx context.Context, item *models.BudgetItem) error {
	taken, err := codeTaken[models.BudgetItem](ctx, r.db, item.Code, "")
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("budgetItemCode already exists")
	}
	err = r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
	return translate(err, "budget item")
}

func (r *gormBudgetItemRepository) Update(ctx context.Context, id string, patch BudgetItemPatch) (*models.BudgetItem, error) {
	current, err := getActive[models.BudgetItem](ctx, r.db, id, "budget item")
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Code != nil && *patch.Code != current.Code {
		taken, err := codeTaken[models.BudgetItem](ctx, r.db, *patch.Code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("budgetItemCode already exists")
		}
		updates["code"] = *patch.Code
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.FiscalYear != nil {
		updates["fiscal_year"] = *patch.FiscalYear
	}
	if patch.EventID != nil {
		updates["event_id"] = *patch.EventID
	}
	if patch.ExpenseCategoryID != nil {
		updates["expense_category_id"] = *patch.ExpenseCategoryID
	}

	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&models.BudgetItem{}).Scopes(Active).
			Where("id = ?", id).
			Updates(updates).Error
		if err != nil {
			return nil, translate(err, "budget item")
		}
	}
	return r.GetActive(ctx, id)
}

func (r *gormBudgetItemRepository) SetFinalized(ctx context.Context, id string, finalizedAt *time.Time) (*models.BudgetItem, error) {
	updates := map[string]any{
		"actual_finalized_flg": finalizedAt != nil,
		"actual_finalized_at":  finalizedAt,
	}
	res := r.db.WithContext(ctx).Model(&models.BudgetItem{}).Scopes(Active).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, translate(res.Error, "budget item")
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("budget item not found")
	}
	return r.GetActive(ctx, id)
}

func (r *gormBudgetItemRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete[models.BudgetItem](ctx, r.db, id, "budget item")
}

func (r *gormBudgetItemRepository) CountActiveByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BudgetItem{}).Scopes(Active).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
