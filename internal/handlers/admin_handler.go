package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"log/slog"
	"strconv"

	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/middleware"
	"github.com/bragboard/bragboard-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.adminService.Stats()
	if err != nil {
		slog.Error("failed to aggregate admin stats", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}
	return c.JSON(stats)
}

// ExportCSV streams every post as a CSV attachment. A deleted sender
// renders as "Deleted User"/"N/A" instead of failing the export.
func (h *AdminHandler) ExportCSV(c *fiber.Ctx) error {
	posts, err := h.adminService.AllShoutOuts()
	if err != nil {
		slog.Error("failed to export shoutouts", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"ID", "Sender", "Sender Dept", "Message", "Date", "Reported"})
	for _, post := range posts {
		senderName := "Deleted User"
		senderDept := "N/A"
		if post.Sender != nil {
			senderName = post.Sender.Name
			senderDept = post.Sender.Department
		}

		date := "N/A"
		if !post.CreatedAt.IsZero() {
			date = post.CreatedAt.Format("2006-01-02 15:04")
		}

		reported := "No"
		if post.IsReported {
			reported = "Yes"
		}

		_ = w.Write([]string{
			strconv.FormatUint(uint64(post.ID), 10),
			senderName,
			senderDept,
			post.Message,
			date,
			reported,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		slog.Error("failed to write csv", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=bragboard_report.csv`)
	return c.Send(buf.Bytes())
}

func (h *AdminHandler) DeleteShoutOut(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := shoutoutID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid shoutout ID",
		})
	}

	if err := h.adminService.DeleteShoutOut(admin.ID, id); err != nil {
		if errors.Is(err, services.ErrShoutOutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Detail: "Shoutout not found",
			})
		}
		slog.Error("failed to delete shoutout", "error", err, "admin_id", admin.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Deleted successfully"})
}

func (h *AdminHandler) DismissReport(c *fiber.Ctx) error {
	id, err := shoutoutID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid shoutout ID",
		})
	}

	if err := h.adminService.DismissReport(id); err != nil {
		if errors.Is(err, services.ErrShoutOutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Detail: "Shoutout not found",
			})
		}
		slog.Error("failed to dismiss report", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Report dismissed"})
}

// CreateUser creates an account from the admin dashboard. The admin role
// comes from ?is_admin_flag=true or from the configured secret.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid request body",
		})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" || req.Department == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Name, email, password and department are required",
		})
	}

	user, err := h.adminService.CreateUser(admin.ID, &req, c.QueryBool("is_admin_flag", false))
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Detail: "Email already registered",
			})
		}
		slog.Error("failed to create user", "error", err, "admin_id", admin.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: "User " + user.Name + " created successfully as " + user.Role,
		IsAdmin: user.IsAdmin(),
	})
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	admin := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid user ID",
		})
	}

	if err := h.adminService.DeleteUser(admin.ID, uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Detail: "User not found",
			})
		case errors.Is(err, services.ErrSelfDelete):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Detail: "You cannot delete your own admin account",
			})
		}
		slog.Error("failed to delete user", "error", err, "admin_id", admin.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "User deleted successfully"})
}
