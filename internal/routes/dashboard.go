package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/dashboard"
)

// RegisterDashboardRoutes wires the landing-page aggregate endpoints.
func RegisterDashboardRoutes(r fiber.Router, h *dashboard.Handler) {
	group := r.Group("/dashboard")
	group.Get("/stats", h.Stats)
	group.Get("/monthly-movement", h.MonthlyMovement)
	group.Get("/recent", h.Recent)
}
