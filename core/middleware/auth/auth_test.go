package auth_test

import (
	"net/http/httptest"
	"testing"

	"tag-manager/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		apiKey     string
		header     string
		wantStatus int
	}{
		{"Valid Key", "secret", "secret", fiber.StatusOK},
		{"Wrong Key", "secret", "guess", fiber.StatusUnauthorized},
		{"Missing Key", "secret", "", fiber.StatusUnauthorized},
		{"Auth Disabled", "", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(auth.New(auth.Config{ApiKey: tt.apiKey}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(auth.Header, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
