package models

import "time"

type AuditAction string

const (
	AuditActionCreate     AuditAction = "create"
	AuditActionUpdate     AuditAction = "update"
	AuditActionDelete     AuditAction = "delete"
	AuditActionUpsert     AuditAction = "upsert"
	AuditActionFinalize   AuditAction = "finalize"
	AuditActionUnfinalize AuditAction = "unfinalize"
)

// AuditLog is an append-only record of one mutation.
type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	// "api:<subject>", "api" or "web"
	Actor string `gorm:"size:100"`

	// e.g. "event", "expense_category", "budget_item", "budget_monthly", "actual_monthly"
	EntityType string `gorm:"size:50;index:idx_audit_logs_entity"`
	EntityID   string `gorm:"size:36;index:idx_audit_logs_entity"`

	Action      AuditAction `gorm:"size:20"`
	Description string      `gorm:"size:255"`

	// JSON snapshots, "null" when absent
	BeforeData string `gorm:"type:text"`
	AfterData  string `gorm:"type:text"`
}

func (AuditLog) TableName() string { return "audit_logs" }
