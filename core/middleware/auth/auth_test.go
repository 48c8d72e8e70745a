package auth_test

import (
	"net/http/httptest"
	"testing"

	"catalog-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "secret", PublicPrefixes: []string{"/webhook", "/swagger"}}))
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/inventory/sync/last", ok)
	app.Get("/webhook", ok)
	app.Get("/webhooks", ok)
	app.Get("/swagger/index.html", ok)

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"Missing key", "/inventory/sync/last", "", "", fiber.StatusUnauthorized},
		{"Wrong key", "/inventory/sync/last", "X-API-Key", "nope", fiber.StatusUnauthorized},
		{"Header key", "/inventory/sync/last", "X-API-Key", "secret", fiber.StatusOK},
		{"Bearer token", "/inventory/sync/last", "Authorization", "Bearer secret", fiber.StatusOK},
		{"Public exact", "/webhook", "", "", fiber.StatusOK},
		{"Public nested", "/swagger/index.html", "", "", fiber.StatusOK},
		{"Prefix is not a substring match", "/webhooks", "", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestNew_Disabled(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
