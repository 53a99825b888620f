package auth

import (
	"github.com/gofiber/fiber/v2"
)

// GET /auth/me
// Reports whether writes are guarded and, for a verified token, its subject.
func MeHandler(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"guarded": secret != "",
			"subject": nil,
		}

		if secret != "" {
			if token, err := bearerToken(c); err == nil {
				if claims, err := ParseToken(secret, token); err == nil {
					resp["subject"] = claims.Subject
				}
			}
		}

		return c.JSON(resp)
	}
}
