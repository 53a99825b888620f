// Package budget holds the application operations behind the HTTP API and the
// web pages: input validation, reference and uniqueness checks, the
// finalization gate on actual amounts, and the audit trail of every change.
package budget

import (
	"context"
	"log/slog"
	"time"

	"budget-backend/internal/audit"
	"budget-backend/internal/store"
	"budget-backend/internal/validation"
)

type Service struct {
	store    *store.Store
	audit    *audit.Log
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(st *store.Store, auditLog *audit.Log, logger *slog.Logger) *Service {
	return &Service{
		store:    st,
		audit:    auditLog,
		validate: validation.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// record writes an audit entry. A failed audit write never fails the change
// it describes; it is logged instead.
func (s *Service) record(ctx context.Context, opts audit.LogOptions) {
	if err := s.audit.Write(ctx, opts); err != nil {
		s.logger.WarnContext(ctx, "audit log write failed",
			slog.String("entity_type", opts.EntityType),
			slog.String("entity_id", opts.EntityID),
			slog.String("action", string(opts.Action)),
			slog.Any("error", err),
		)
	}
}
