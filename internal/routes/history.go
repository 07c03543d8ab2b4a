package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/history"
)

// RegisterHistoryRoutes wires the transaction history endpoints.
func RegisterHistoryRoutes(r fiber.Router, h *history.Handler) {
	r.Get("/accounts/:accountId/transactions", h.Page)
	r.Get("/accounts/:accountId/transactions/since", h.Since)
}
