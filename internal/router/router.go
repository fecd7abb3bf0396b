package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/pantau-go-api/internal/handler"
	"github.com/noah-isme/pantau-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CheckInHandler      *handler.CheckInHandler
	StudentHandler      *handler.StudentHandler
	InterventionHandler *handler.InterventionHandler
}

// Register wires the HTTP routes into the fiber application. The route
// shapes match the external workflow integration and are served at the
// root, not under a versioned prefix.
func Register(app *fiber.App, deps Dependencies) {
	app.Get("/health", handler.HealthCheck())
	app.Get("/metrics", observability.MetricsHandler())

	if deps.CheckInHandler != nil {
		deps.CheckInHandler.Register(app)
	}

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(app)
	}

	if deps.InterventionHandler != nil {
		deps.InterventionHandler.Register(app)
	}
}
