package audit

import (
	"encoding/json"
	"time"

	"budget-backend/internal/apperr"
	"budget-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"createdAt"`
	Actor       string             `json:"actor"`
	EntityType  string             `json:"entityType"`
	EntityID    string             `json:"entityId"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	Before      json.RawMessage    `json:"before"`
	After       json.RawMessage    `json:"after"`
}

// GET /audit-logs?entityType=budget_item&entityId=...&limit=50
func ListAuditLogsHandler(log *Log) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit < 1 {
			return apperr.Validation("limit must be at least 1")
		}

		logs, err := log.List(c.UserContext(), Filter{
			EntityType: c.Query("entityType"),
			EntityID:   c.Query("entityId"),
			Limit:      limit,
		})
		if err != nil {
			return err
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.UTC().Format(time.RFC3339),
				Actor:       l.Actor,
				EntityType:  l.EntityType,
				EntityID:    l.EntityID,
				Action:      l.Action,
				Description: l.Description,
				Before:      rawJSON(l.BeforeData),
				After:       rawJSON(l.AfterData),
			})
		}

		return c.JSON(resp)
	}
}

func rawJSON(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return json.RawMessage("null")
	}
	return json.RawMessage(s)
}
