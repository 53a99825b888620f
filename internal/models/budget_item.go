package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetItem is one line of the budget for a fiscal year and event.
// Event and ExpenseCategory are references; deleting either never cascades.
type BudgetItem struct {
	ID                string          `gorm:"size:36;primaryKey"`
	FiscalYear        int             `gorm:"not null;index"`
	Code              string          `gorm:"size:50;not null;uniqueIndex:idx_budget_items_code_active,where:del_flg = false"`
	Name              string          `gorm:"size:100;not null"`
	EventID           string          `gorm:"size:36;not null;index"`
	Event             Event           `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	ExpenseCategoryID string          `gorm:"size:36;not null;index"`
	ExpenseCategory   ExpenseCategory `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`

	// ActualFinalizedAt is set exactly while ActualFinalizedFlg is true.
	ActualFinalizedFlg bool `gorm:"not null;default:false"`
	ActualFinalizedAt  *time.Time

	DelFlg    bool `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	BudgetMonthlies []BudgetMonthly
	ActualMonthlies []ActualMonthly
}

func (BudgetItem) TableName() string { return "budget_items" }

func (b *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
