package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/report"
)

// RegisterReportRoutes wires the balance reconciliation endpoints.
func RegisterReportRoutes(r fiber.Router, h *report.Handler) {
	r.Get("/accounts/:accountId/balance-report", h.BalanceReport)
}
