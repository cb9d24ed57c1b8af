package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/rela-go-api/internal/config"
	"github.com/noah-isme/rela-go-api/internal/handler"
	"github.com/noah-isme/rela-go-api/internal/middleware"
	"github.com/noah-isme/rela-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	MetricsHandler *handler.MetricsHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.MetricsHandler != nil {
		group := api.Group("/organizations/:orgID/metrics",
			jwtMiddleware,
			middleware.RequireRole(middleware.RoleAdmin, middleware.RoleCoordinator),
			middleware.RateLimit("org-metrics", cfg.RateLimitMax, cfg.RateLimitWindow),
		)
		deps.MetricsHandler.Register(group)
	}
}
