package middleware

import (
	"errors"

	"github.com/bragboard/bragboard-api/internal/config"
	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/models"
	"github.com/bragboard/bragboard-api/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected validates the bearer token's signature and expiry.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Detail: "Could not validate credentials",
			})
		},
	})
}

// LoadCurrentUser resolves the token subject to the live user record and
// stores it in the request context. The token itself carries no role or
// privileges, so a user deleted after token issuance is rejected here.
func LoadCurrentUser(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		subject, err := tokenSubject(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Detail: "Could not validate credentials",
			})
		}

		user, err := authService.ResolveUser(subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Detail: "Could not validate credentials",
			})
		}

		c.Locals("currentUser", user)
		return c.Next()
	}
}

// CurrentUser returns the user loaded by LoadCurrentUser, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

func tokenSubject(c *fiber.Ctx) (string, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return "", errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub claim")
	}
	return sub, nil
}
