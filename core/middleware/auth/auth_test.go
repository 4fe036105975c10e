package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		header string
		want   int
	}{
		{"Disabled", "", "", fiber.StatusOK},
		{"Missing", "secret", "", fiber.StatusUnauthorized},
		{"Wrong", "secret", "nope", fiber.StatusUnauthorized},
		{"Valid", "secret", "secret", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(New(Config{ApiKey: tt.key}))
			app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set(Header, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
