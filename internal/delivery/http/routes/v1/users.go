package v1

import (
	"lawjobs/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, auth fiber.Handler, users *handler.UserHandler, session *handler.SessionHandler) {
	if r == nil {
		return
	}

	if users != nil {
		users.RegisterRoutes(r.Group("/users", auth))
	}
	if session != nil {
		session.RegisterRoutes(r.Group("/board", auth))
	}
}
