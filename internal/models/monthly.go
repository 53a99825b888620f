package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FirstFiscalMonth = 1
	LastFiscalMonth  = 12
)

// BudgetMonthly holds the planned amount of one budget item for one month.
// (BudgetItemID, FiscalMonth) is unique; writes are upserts on that pair.
type BudgetMonthly struct {
	ID           string `gorm:"size:36;primaryKey"`
	BudgetItemID string `gorm:"size:36;not null;uniqueIndex:idx_budget_monthlies_item_month"`
	FiscalMonth  int    `gorm:"not null;uniqueIndex:idx_budget_monthlies_item_month"`
	BudgetAmount int64  `gorm:"not null"`
	DelFlg       bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (BudgetMonthly) TableName() string { return "budget_monthlies" }

func (m *BudgetMonthly) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ActualMonthly holds the realised amount of one budget item for one month.
type ActualMonthly struct {
	ID           string `gorm:"size:36;primaryKey"`
	BudgetItemID string `gorm:"size:36;not null;uniqueIndex:idx_actual_monthlies_item_month"`
	FiscalMonth  int    `gorm:"not null;uniqueIndex:idx_actual_monthlies_item_month"`
	ActualAmount int64  `gorm:"not null"`
	DelFlg       bool   `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ActualMonthly) TableName() string { return "actual_monthlies" }

func (m *ActualMonthly) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
