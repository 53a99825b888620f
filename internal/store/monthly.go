package store

import (
	"context"
	"fmt"

	"budget-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthAmount is one (fiscal month, amount) pair of a budget item.
type MonthAmount struct {
	FiscalMonth int
	Amount      int64
}

type MonthlyRepository interface {
	// List returns the active rows of an item ordered by month.
	List(ctx context.Context, budgetItemID string) ([]MonthAmount, error)
	// BulkUpsert writes every row in one transaction: all of them or none.
	BulkUpsert(ctx context.Context, budgetItemID string, rows []MonthAmount) error
}

type monthlyTable struct {
	name         string
	amountColumn string
	newRow       func(budgetItemID string, r MonthAmount) any
}

type gormMonthlyRepository struct {
	db    *gorm.DB
	table monthlyTable
}

func NewBudgetMonthlyRepository(db *gorm.DB) MonthlyRepository {
	return &gormMonthlyRepository{db: db, table: monthlyTable{
		name:         models.BudgetMonthly{}.TableName(),
		amountColumn: "budget_amount",
		newRow: func(budgetItemID string, r MonthAmount) any {
			return &models.BudgetMonthly{BudgetItemID: budgetItemID, FiscalMonth: r.FiscalMonth, BudgetAmount: r.Amount}
		},
	}}
}

func NewActualMonthlyRepository(db *gorm.DB) MonthlyRepository {
	return &gormMonthlyRepository{db: db, table: monthlyTable{
		name:         models.ActualMonthly{}.TableName(),
		amountColumn: "actual_amount",
		newRow: func(budgetItemID string, r MonthAmount) any {
			return &models.ActualMonthly{BudgetItemID: budgetItemID, FiscalMonth: r.FiscalMonth, ActualAmount: r.Amount}
		},
	}}
}

func (r *gormMonthlyRepository) List(ctx context.Context, budgetItemID string) ([]MonthAmount, error) {
	rows := make([]MonthAmount, 0, models.LastFiscalMonth)
	err := r.db.WithContext(ctx).Table(r.table.name).Scopes(Active).
		Select("fiscal_month, "+r.table.amountColumn+" AS amount").
		Where("budget_item_id = ?", budgetItemID).
		Order("fiscal_month asc").
		Scan(&rows).Error
	return rows, err
}

func (r *gormMonthlyRepository) BulkUpsert(ctx context.Context, budgetItemID string, rows []MonthAmount) error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "budget_item_id"}, {Name: "fiscal_month"}},
		DoUpdates: clause.AssignmentColumns([]string{r.table.amountColumn, "del_flg", "updated_at"}),
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			rec := r.table.newRow(budgetItemID, row)
			if err := tx.Clauses(onConflict).Create(rec).Error; err != nil {
				return fmt.Errorf("upsert %s month %d: %w", r.table.name, row.FiscalMonth, translate(err, "budget item"))
			}
		}
		return nil
	})
}
