package auth

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"budget-backend/internal/apperr"
	"budget-backend/internal/audit"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(secret, "alice", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)

	_, err = ParseToken(strings.Repeat("x", 32), token)
	assert.Error(t, err)

	expired, err := GenerateToken(secret, "alice", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.Error(t, err)

	_, err = GenerateToken("", "alice", time.Hour)
	assert.Error(t, err)
}

func newGuardedApp(secret string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperr.Status(err)).JSON(fiber.Map{"message": apperr.Message(err)})
		},
	})
	app.Use(Guard(secret))
	handler := func(c *fiber.Ctx) error {
		return c.SendString(audit.ActorFrom(c.UserContext()))
	}
	app.Get("/items", handler)
	app.Post("/items", handler)
	return app
}

func TestGuard(t *testing.T) {
	app := newGuardedApp(secret)
	valid, err := GenerateToken(secret, "alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		auth   string
		status int
		body   string
	}{
		{"reads pass", fiber.MethodGet, "", fiber.StatusOK, "api"},
		{"missing header", fiber.MethodPost, "", fiber.StatusUnauthorized, ""},
		{"wrong scheme", fiber.MethodPost, "Basic " + valid, fiber.StatusUnauthorized, ""},
		{"bad token", fiber.MethodPost, "Bearer nope", fiber.StatusUnauthorized, ""},
		{"valid token", fiber.MethodPost, "Bearer " + valid, fiber.StatusOK, "api:alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/items", nil)
			if tt.auth != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.auth)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.body != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.body, string(body))
			}
		})
	}
}

func TestGuardDisabledWithoutSecret(t *testing.T) {
	app := newGuardedApp("")

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/items", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
