package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/account"
)

// RegisterAccountRoutes wires the account roster endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	group := r.Group("/accounts")
	group.Get("/", h.List)
	group.Get("/:accountId", h.Get)
}
