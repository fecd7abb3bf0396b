package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pantau-go-api/internal/middleware"
)

func setupApp() *fiber.App {
	app := fiber.New()
	middleware.Register(app, middleware.Config{})
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"correlation_id": middleware.GetCorrelationID(c),
		})
	})
	return app
}

func TestCorrelationIDEchoesIncomingHeader(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Correlation-ID", "corr-abc-123")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "corr-abc-123", resp.Header.Get("X-Correlation-ID"))
}

func TestCorrelationIDFallsBackToRequestID(t *testing.T) {
	app := setupApp()

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "req-789")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, "req-789", resp.Header.Get("X-Correlation-ID"))
}

func TestCorrelationIDGeneratedWhenAbsent(t *testing.T) {
	app := setupApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)

	generated := resp.Header.Get("X-Correlation-ID")
	require.NotEmpty(t, generated)
	_, err = uuid.Parse(generated)
	require.NoError(t, err)
}
