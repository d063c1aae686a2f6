package handlers_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/recipekit/recipedb/internal/middleware"
	"github.com/recipekit/recipedb/internal/types"
)

// newVersionedApp mounts the version middleware with an error handler that
// honors the code carried by a CustomError
func newVersionedApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var ce *types.CustomError
			if errors.As(err, &ce) {
				return c.Status(ce.Code).JSON(fiber.Map{"message": ce.Message, "type": ce.Type})
			}
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		},
	})
	app.Use(middleware.VersionMiddleware())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})
	return app
}

// TestVersionMiddleware tests header parsing, aliases, and rejection
func TestVersionMiddleware(t *testing.T) {
	app := newVersionedApp()

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"default", "", 200},
		{"full version", "1.0.0", 200},
		{"short alias", "1.0", 200},
		{"major alias", "1", 200},
		{"minor bump", "1.2.0", 200},
		{"unsupported major", "2.0.0", 400},
		{"garbage", "latest", 400},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ping", nil)
			if tc.header != "" {
				req.Header.Set("X-Api-Version", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to execute request: %v", err)
			}
			if resp.StatusCode != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}
