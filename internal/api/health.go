package api

import (
	"context"
	"time"

	"budget-backend/internal/database"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /health
func HealthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
