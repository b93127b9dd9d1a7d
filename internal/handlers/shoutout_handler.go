package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/middleware"
	"github.com/bragboard/bragboard-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ShoutOutHandler struct {
	shoutoutService *services.ShoutOutService
}

func NewShoutOutHandler(shoutoutService *services.ShoutOutService) *ShoutOutHandler {
	return &ShoutOutHandler{shoutoutService: shoutoutService}
}

func (h *ShoutOutHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateShoutOutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid request body",
		})
	}

	post, err := h.shoutoutService.Create(user.ID, req.Message, req.RecipientIDs)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Detail: "Message cannot be empty",
			})
		}
		slog.Error("failed to create shoutout", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ShoutOutCreatedResponse{
		ID:         post.ID,
		Message:    post.Message,
		SenderID:   post.SenderID,
		CreatedAt:  post.CreatedAt,
		IsReported: post.IsReported,
	})
}

// List returns the feed, optionally filtered by one or more sender
// departments (?depts=Eng&depts=Sales).
func (h *ShoutOutHandler) List(c *fiber.Ctx) error {
	var depts []string
	for _, v := range c.Context().QueryArgs().PeekMulti("depts") {
		if len(v) > 0 {
			depts = append(depts, string(v))
		}
	}

	posts, err := h.shoutoutService.List(services.ListFilters{Departments: depts})
	if err != nil {
		slog.Error("failed to list shoutouts", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(services.BuildFeed(posts))
}

// Mine returns posts the caller sent or was recognized in.
func (h *ShoutOutHandler) Mine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	posts, err := h.shoutoutService.ListForUser(user.ID)
	if err != nil {
		slog.Error("failed to list user shoutouts", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(services.BuildFeed(posts))
}

func (h *ShoutOutHandler) ToggleReaction(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := shoutoutID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid shoutout ID",
		})
	}

	var req dto.ReactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid request body",
		})
	}

	action, err := h.shoutoutService.ToggleReaction(id, user.ID, req.ReactionType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownReaction):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Detail: "Reaction type must be one of: like, clap, star",
			})
		case errors.Is(err, services.ErrShoutOutNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Detail: "Shoutout not found",
			})
		}
		slog.Error("failed to toggle reaction", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(dto.ReactionToggleResponse{Action: action})
}

func (h *ShoutOutHandler) AddComment(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := shoutoutID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid shoutout ID",
		})
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid request body",
		})
	}

	comment, err := h.shoutoutService.AddComment(id, user.ID, req.Text)
	if err != nil {
		slog.Error("failed to add comment", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(dto.CommentResponse{
		ID:   comment.ID,
		Text: comment.Text,
		User: dto.CommentAuthor{ID: user.ID, Name: user.Name},
	})
}

// Report flags a post for moderation. Any authenticated user may report
// any post.
func (h *ShoutOutHandler) Report(c *fiber.Ctx) error {
	id, err := shoutoutID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Detail: "Invalid shoutout ID",
		})
	}

	if err := h.shoutoutService.Report(id); err != nil {
		if errors.Is(err, services.ErrShoutOutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Detail: "Post not found",
			})
		}
		slog.Error("failed to report shoutout", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Detail: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Reported"})
}

func shoutoutID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
