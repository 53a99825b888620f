package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseCategory struct {
	ID        string `gorm:"size:36;primaryKey"`
	Code      string `gorm:"size:50;not null;uniqueIndex:idx_mst_expense_categories_code_active,where:del_flg = false"`
	Name      string `gorm:"size:100;not null"`
	DelFlg    bool   `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ExpenseCategory) TableName() string { return "mst_expense_categories" }

func (c *ExpenseCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
