package v1

import (
	"lawjobs/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

// RegisterJobs mounts the board routes. They run behind the optional auth
// middleware: browsing is anonymous, favorites answer anonymous callers with
// a sign-in prompt.
func RegisterJobs(r fiber.Router, optionalAuth fiber.Handler, jobs *handler.JobsHandler, favorites *handler.FavoritesHandler) {
	if r == nil {
		return
	}

	if jobs != nil {
		jobs.RegisterRoutes(r.Group("/jobs", optionalAuth))
	}
	if favorites != nil {
		favorites.RegisterRoutes(r.Group("/favorites", optionalAuth))
	}
}
