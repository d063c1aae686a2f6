package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts a positive integer id from a path parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}
