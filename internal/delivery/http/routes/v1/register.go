package v1

import (
	"lawjobs/internal/delivery/http/handler"
	"lawjobs/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Jobs      *handler.JobsHandler
	Favorites *handler.FavoritesHandler
	Session   *handler.SessionHandler
	AuthMw    *middleware.AuthMiddleware
}

func Register(r fiber.Router, h Handlers) {
	if r == nil || h.AuthMw == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	RegisterJobs(r, h.AuthMw.Optional(), h.Jobs, h.Favorites)
	RegisterUsers(r, h.AuthMw.Middleware(), h.Users, h.Session)
}
