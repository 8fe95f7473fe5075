package logger

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantInfo  bool
		wantErr   bool
	}{
		{name: "production json", cfg: Config{Level: "info", Format: "json"}, wantInfo: true},
		{name: "development console", cfg: Config{Level: "debug", Format: "console"}, wantDebug: true, wantInfo: true},
		{name: "warn level", cfg: Config{Level: "warn"}},
		{name: "empty defaults to info", cfg: Config{}, wantInfo: true},
		{name: "unknown level", cfg: Config{Level: "loud"}, wantErr: true},
		{name: "unknown format", cfg: Config{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDebug, l.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, tt.wantInfo, l.Core().Enabled(zapcore.InfoLevel))
			assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))
		})
	}
}

func TestWithRayID(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-123")
		WithRayID(base, c).Info("with ray")
		c.Locals("ray_id", "")
		WithRayID(base, c).Info("without ray")
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ray-123", entries[0].ContextMap()["ray_id"])
	_, ok := entries[1].ContextMap()["ray_id"]
	assert.False(t, ok)
}

func TestRequests(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("ray_id", "ray-9")
		return c.Next()
	})
	app.Use(Requests(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusAccepted) })
	app.Get("/fail", func(c *fiber.Ctx) error { return errors.New("boom") })

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Request started", entries[0].Message)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, "Request finished", entries[1].Message)
	assert.EqualValues(t, fiber.StatusAccepted, entries[1].ContextMap()["status"])
	assert.Equal(t, "ray-9", entries[1].ContextMap()["ray_id"])

	_, err = app.Test(httptest.NewRequest("GET", "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Request error").Len())
}
