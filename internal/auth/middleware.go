package auth

import (
	"strings"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"

	"github.com/gofiber/fiber/v2"
)

const CtxSubjectKey = "auth_subject"

// Guard requires a valid bearer token on write requests when secret is set.
// Reads always pass. With an empty secret the guard is a pass-through.
// An authenticated subject becomes the audit actor "api:<subject>".
func Guard(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" || isRead(c.Method()) {
			return c.Next()
		}

		tokenStr, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			return apperr.Unauthorized("invalid or expired token")
		}

		c.Locals(CtxSubjectKey, claims.Subject)
		c.SetUserContext(audit.WithActor(c.UserContext(), "api:"+claims.Subject))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperr.Unauthorized("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", apperr.Unauthorized("Authorization header must be 'Bearer <token>'")
	}
	return strings.TrimSpace(parts[1]), nil
}

func isRead(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}
