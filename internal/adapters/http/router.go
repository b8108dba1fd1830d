package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"

	"github.com/samirrijal/restofinder/internal/pkg/metrics"
)

// SetupRoutes registers the REST, GraphQL and documentation routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	// Security headers + API version
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", version)
		return c.Next()
	})

	app.Get("/health", HealthHandler(deps))
	app.Get("/ready", ReadyHandler(deps))

	// The timeout covers the page-token delay as well as the upstream call.
	rt := deps.requestTimeout()
	list := ListRestaurantsHandler(deps)
	detail := GetRestaurantHandler(deps)
	// Without strict routing "/restaurants/" matches the collection route.
	// It is a detail lookup with an empty id.
	app.Get("/restaurants", timeout.NewWithContext(func(c *fiber.Ctx) error {
		if strings.HasSuffix(c.Path(), "/") {
			return detail(c)
		}
		return list(c)
	}, rt))
	app.Get("/restaurants/:id?", timeout.NewWithContext(detail, rt))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)
}
