package routes

import (
	"lawjobs/internal/delivery/http/handler"
	v1 "lawjobs/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	events fiber.Handler
	v1     v1.Handlers
}

// NewRegistry collects the root handlers. events serves the websocket stream
// and may be nil.
func NewRegistry(health *handler.HealthHandler, events fiber.Handler, api v1.Handlers) *Registry {
	return &Registry{health: health, events: events, v1: api}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerEvents(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerEvents(app *fiber.App) {
	if r.events == nil {
		return
	}
	app.Get("/ws/events", r.events)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}
