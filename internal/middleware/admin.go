package middleware

import (
	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates privileged routes on the live user record loaded by
// LoadCurrentUser, never on anything cached in the token.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Detail: "Could not validate credentials",
			})
		}
		if !user.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Detail: "Not authorized as admin",
			})
		}
		return c.Next()
	}
}
