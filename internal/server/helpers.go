package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// errBadID is returned by parseID when a route parameter is not a positive
// integer; callers treat it as a not-found.
var errBadID = errors.New("invalid id parameter")

// parseID extracts a route parameter by name as a positive uint.
func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return uint(id), nil
}
