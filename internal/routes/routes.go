package routes

import (
	"time"

	"github.com/bragboard/bragboard-api/internal/config"
	"github.com/bragboard/bragboard-api/internal/dto"
	"github.com/bragboard/bragboard-api/internal/handlers"
	"github.com/bragboard/bragboard-api/internal/middleware"
	"github.com/bragboard/bragboard-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authService *services.AuthService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	shoutoutHandler *handlers.ShoutOutHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(dto.MessageResponse{Message: "BragBoard API is running!"})
	})
	app.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter rate limit: 10 req/min per IP.
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/register", authLimiter, authHandler.Register)
	app.Post("/login", authLimiter, authHandler.Login)

	// Everything below requires a valid token resolved to a live user.
	authed := app.Group("/", middleware.JWTProtected(cfg), middleware.LoadCurrentUser(authService))

	authed.Get("/me", authHandler.Me)
	authed.Get("/users", userHandler.List)
	authed.Get("/users/me/shoutouts", shoutoutHandler.Mine)

	authed.Post("/shoutouts", shoutoutHandler.Create)
	authed.Get("/shoutouts", shoutoutHandler.List)
	authed.Post("/shoutouts/:id/reactions", shoutoutHandler.ToggleReaction)
	authed.Post("/shoutouts/:id/comments", shoutoutHandler.AddComment)
	authed.Put("/shoutouts/:id/report", shoutoutHandler.Report)

	// Admin routes re-check the role on the live record per request.
	admin := authed.Group("/admin", middleware.AdminRequired())
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/export-csv", adminHandler.ExportCSV)
	admin.Delete("/shoutout/:id", adminHandler.DeleteShoutOut)
	admin.Put("/shoutout/:id/dismiss", adminHandler.DismissReport)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Delete("/users/:id", adminHandler.DeleteUser)
}
