package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"budget-backend/internal/models"

	"gorm.io/gorm"
)

const (
	EntityEvent           = "event"
	EntityExpenseCategory = "expense_category"
	EntityBudgetItem      = "budget_item"
	EntityBudgetMonthly   = "budget_monthly"
	EntityActualMonthly   = "actual_monthly"

	DefaultActor = "api"
	maxListLimit = 500
)

type LogOptions struct {
	// Actor overrides the actor carried by the context.
	Actor       string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Filter struct {
	EntityType string
	EntityID   string
	Limit      int
}

// Log is the append-only audit trail.
type Log struct {
	db *gorm.DB
}

func NewLog(db *gorm.DB) *Log {
	return &Log{db: db}
}

type actorKey struct{}

// WithActor tags ctx with the caller recorded on audit entries.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}

func (l *Log) Write(ctx context.Context, opts LogOptions) error {
	actor := opts.Actor
	if actor == "" {
		actor = ActorFrom(ctx)
	}

	entry := models.AuditLog{
		Actor:       actor,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := l.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

// List returns the newest entries first.
func (l *Log) List(ctx context.Context, filter Filter) ([]models.AuditLog, error) {
	q := l.db.WithContext(ctx).Model(&models.AuditLog{})
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}

	limit := filter.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	var logs []models.AuditLog
	err := q.Order("created_at desc").Order("id desc").Limit(limit).Find(&logs).Error
	return logs, err
}

// snapshot encodes v as JSON; absent values are stored as "null".
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
