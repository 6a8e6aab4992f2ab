package routes

import (
	"github.com/gofiber/fiber/v2"

	"tps-admin/domain/navigation"
	"tps-admin/interfaces/web/handlers"
	"tps-admin/interfaces/web/middleware"
	"tps-admin/pkg/config"
)

// NewApp creates the Fiber app with routing that matches paths exactly.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:       appName,
		ErrorHandler:  middleware.ErrorHandler(),
		StrictRouting: true,
		CaseSensitive: true,
	})
}

// SetupMiddleware installs request logging and the session cookie ahead of
// every route.
func SetupMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.SessionMiddleware(middleware.NewSessionStore(&cfg.Session)))
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, cfg *config.Config) {
	if h.Health != nil {
		SetupHealthRoutes(app, h.Health)
	}
	SetupPersonRoutes(app, h, &cfg.RateLimit)
}

func SetupHealthRoutes(app *fiber.App, healthHandler *handlers.HealthHandler) {
	app.Get("/health", healthHandler.Health)
	app.Get("/health/detailed", healthHandler.DetailedHealth)
}

func SetupPersonRoutes(app *fiber.App, h *handlers.Handlers, rateLimit *config.RateLimitConfig) {
	limit := middleware.RateLimiter(rateLimit)

	app.Get(navigation.ListPath, h.PersonList.Page)
	app.Post(navigation.ListPath, limit, h.PersonList.Action)
	app.Get("/delete/:id", h.PersonList.ConfirmDelete)

	app.Get(navigation.AddPath, h.PersonForm.Page)
	app.Post(navigation.AddPath, limit, h.PersonForm.Submit)
	app.Get(navigation.EditPattern, h.PersonForm.Page)
	app.Post(navigation.EditPattern, limit, h.PersonForm.Submit)
}
