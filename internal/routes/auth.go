package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/auth"
)

// RegisterAuthRoutes wires the admin session endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	if rateLimiter != nil {
		group.Post("/login", rateLimiter, h.Login)
	} else {
		group.Post("/login", h.Login)
	}
	group.Post("/logout", h.Logout)
	group.Get("/me", h.Current)
}
