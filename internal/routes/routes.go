// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"homefix/internal/handlers"
	"homefix/internal/middleware"
	"homefix/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Health  *handlers.HealthHandler
	Fees    *handlers.FeeHandler
	Payment *handlers.PaymentHandler
	Admin   *handlers.AdminHandler
	Auth    *middleware.AuthMiddleware
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to HomeFix API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")
	api.Get("/health", h.Health.HealthCheck)

	fees := api.Group("/fees")
	fees.Get("/tiers", h.Fees.ListTiers)
	fees.Post("/calculate", h.Fees.Calculate)
	fees.Post("/quote", h.Fees.Quote)

	api.Post("/payments/intents", h.Payment.CreateIntent)

	setupAdminRoutes(api, h)
}

func setupAdminRoutes(api fiber.Router, h Handlers) {
	admin := api.Group("/admin")

	admin.Post("/login", loginLimiter(), h.Admin.Login)

	tiers := admin.Group("/tiers", h.Auth.Handler, middleware.RequirePermission(models.PermissionTiersWrite))
	tiers.Put("/", h.Admin.ReplaceTiers)
	tiers.Post("/reload", h.Admin.ReloadTiers)
}

func loginLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
