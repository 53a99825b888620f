package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a reporting period such as a quarter or a planning round.
type Event struct {
	ID        string `gorm:"size:36;primaryKey"`
	Code      string `gorm:"size:50;not null;uniqueIndex:idx_mst_events_code_active,where:del_flg = false"`
	Name      string `gorm:"size:100;not null"`
	Order     int    `gorm:"column:event_order;not null;default:0"`
	DelFlg    bool   `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Event) TableName() string { return "mst_events" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
