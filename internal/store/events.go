package store

import (
	"context"

	"budget-backend/internal/apperr"
	"budget-backend/internal/models"

	"gorm.io/gorm"
)

type EventPatch struct {
	Code  *string
	Name  *string
	Order *int
}

type EventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	GetActive(ctx context.Context, id string) (*models.Event, error)
	GetActiveByCode(ctx context.Context, code string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, id string, patch EventPatch) (*models.Event, error)
	SoftDelete(ctx context.Context, id string) error
}

type gormEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Scopes(Active).
		Order("event_order asc, code asc").
		Find(&events).Error
	return events, err
}

func (r *gormEventRepository) GetActive(ctx context.Context, id string) (*models.Event, error) {
	return getActive[models.Event](ctx, r.db, id, "event")
}

func (r *gormEventRepository) GetActiveByCode(ctx context.Context, code string) (*models.Event, error) {
	return getActiveByCode[models.Event](ctx, r.db, code, "event")
}

func (r *gormEventRepository) Create(ctx context.Context, event *models.Event) error {
	taken, err := codeTaken[models.Event](ctx, r.db, event.Code, "")
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("eventCode already exists")
	}
	return translate(r.db.WithContext(ctx).Create(event).Error, "event")
}

func (r *gormEventRepository) Update(ctx context.Context, id string, patch EventPatch) (*models.Event, error) {
	current, err := r.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.Code != nil && *patch.Code != current.Code {
		taken, err := codeTaken[models.Event](ctx, r.db, *patch.Code, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("eventCode already exists")
		}
		updates["code"] = *patch.Code
	}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Order != nil {
		updates["event_order"] = *patch.Order
	}
	return applyPatch[models.Event](ctx, r.db, id, "event", updates)
}

func (r *gormEventRepository) SoftDelete(ctx context.Context, id string) error {
	return softDelete[models.Event](ctx, r.db, id, "event")
}
