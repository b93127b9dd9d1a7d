package handlers

import (
	"log/slog"

	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/middleware"
	"github.com/bragboard/bragboard-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	authService *services.AuthService
}

func NewUserHandler(authService *services.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// List returns everyone except the caller, for the recipient picker.
func (h *UserHandler) List(c *fiber.Ctx) error {
	current := middleware.CurrentUser(c)

	users, err := h.authService.ListOtherUsers(current.ID)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	out := make([]dto.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserSummary{
			ID:         u.ID,
			Name:       u.Name,
			Department: u.Department,
		})
	}
	return c.JSON(out)
}
