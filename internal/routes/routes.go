package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ssvp-lar/ilpi-backend/internal/apps"
	"github.com/ssvp-lar/ilpi-backend/internal/config"
	"github.com/ssvp-lar/ilpi-backend/internal/handlers"
	"github.com/ssvp-lar/ilpi-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	settingsHandler *handlers.SettingsHandler,
	userHandler *handlers.UserHandler,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Everything past this point requires a valid token. The group is
	// registered after the public routes so they stay reachable.
	secured := app.Group("/api", middleware.JWTProtected(cfg))

	secured.Post("/auth/logout", authHandler.Logout)

	// Institution and access management
	settings := secured.Group("/settings", middleware.ManagementRequired())
	settings.Get("/institution", settingsHandler.Get)
	settings.Put("/institution", settingsHandler.Save)
	settings.Get("/users", userHandler.List)
	settings.Post("/users", userHandler.Create)
	settings.Delete("/users/:id", userHandler.Delete)
	settings.Put("/users/:id/password", userHandler.ResetPassword)

	// Domain plugins
	for _, p := range plugins {
		p.RegisterRoutes(secured, db, cfg)
	}
}
