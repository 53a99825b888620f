package store

import (
	"context"

	"budget-backend/internal/apperr"
	"budget-backend/internal/models"

	"gorm.io/gorm"
)

type ExpenseCategoryPatch struct {
	Code *string
	Name *string
}

type ExpenseCategoryRepository interface {
	List(ctx context.Context) ([]models.ExpenseCategory, error)
	GetActive(ctx context.Context, id string) (*models.ExpenseCategory, error)
	GetActiveByCode(ctx context.Context, code string) (*models.ExpenseCategory, error)
	Create(ctx context.Context, category *models.ExpenseCategory) error
	Update(ctx context.Context, id string, patch ExpenseCategoryPatch) (*models.ExpenseCategory, error)
	SoftDelete(ctx context.Context, id string) error
}

type gormExpenseCategoryRepository struct {
	db *gorm.DB
}

func NewExpenseCategoryRepository(db *gorm.DB) ExpenseCategoryRepository {
	return &gormExpenseCategoryRepository{db: db}
}

func (r *gormExpenseCategoryRepository) List(ctx context.Context) ([]models.ExpenseCategory, error) {
	var categories []models.ExpenseCategory
	err := r.db.WithContext(ctx).Scopes(Active).
		Order("code asc").
		Find(&categories).Error
	return categories, err
}

func (r *gormExpenseCategoryRepository) GetActive(ctx context.Context, id string) (*models.ExpenseCategory, error) {
	return getActive[models.ExpenseCategory](ctx, r.db, id, "expense category")
}

func (r *gormExpenseCategoryRepository) GetActiveByCode(ctx context.Context, code string) (*models.ExpenseCategory, error) {
	return getActiveByCode[models.ExpenseCategory](ctx, r.db, code, "expense category")
}

func (r *gormExpenseCategoryRepository) Create(ctx context.Context, category *models.ExpenseCategory) error {
	taken, err := codeTaken[models.ExpenseCategory](ctx, r.db, category.Code, "")
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("expenseCategoryCode already exists")
	}
	return translate(r.db.WithContext(ctx).Create(category).Error, "expense category")
}

func (r *gormExpenseCategoryRepository) Update(ctx context.Context, id string, patch ExpenseCategoryPatch) (*models.ExpenseCategory, error) {
	current, err := r.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Code != nil && *patch.Code != current.Code {
		taken, err := codeTaken[models.ExpenseCategory](ctx, r.db, *patch.Code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("expenseCategoryCode already exists")
		}
		updates["code"] = *patch.Code
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	return applyPatch[models.ExpenseCategory](ctx, r.db, id, "expense category", updates)
}

func (r *gormExpenseCategoryRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete[models.ExpenseCategory](ctx, r.db, id, "expense category")
}
