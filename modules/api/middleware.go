package api

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// BearerAuth gates the programmatic /tasks surface behind a single
// shared secret. The compare is constant-time; a mismatch returns 401
// before any handler (and therefore any store access) runs.
func BearerAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthorized(c)
		}
		presented := strings.TrimPrefix(authHeader, "Bearer ")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
			return unauthorized(c)
		}
		return c.Next()
	}
}

// BoardAuth gates the interactive /board surface. The client keeps the
// password in memory for the session and sends it on every request.
func BoardAuth(password string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		presented := c.Get("X-Board-Key")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(password)) != 1 {
			return unauthorized(c)
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{Error: "Unauthorized"})
}
