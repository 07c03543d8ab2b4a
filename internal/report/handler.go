package report

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/money"
)

// Handler exposes balance reconciliation HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a report HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type currencyReportResponse struct {
	Currency string `json:"currency"`
	Cached   string `json:"cached"`
	Computed string `json:"computed"`
	Delta    string `json:"delta"`
	Drift    bool   `json:"drift"`
}

// BalanceReport reconciles all of an account's wallets. An optional asOf
// query parameter (RFC3339) computes the ledger side at a point in time.
func (h *Handler) BalanceReport(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	var asOf time.Time
	if v := c.Query("as_of"); v != "" {
		asOf, err = time.Parse(time.RFC3339, v)
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "as_of must be an RFC3339 timestamp")
		}
	}

	reports, err := h.service.BalanceReport(c.UserContext(), int64(accountID), asOf)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return err
	}

	out := make([]currencyReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, currencyReportResponse{
			Currency: r.Currency,
			Cached:   money.Format(r.Cached),
			Computed: money.Format(r.Computed),
			Delta:    money.Format(r.Delta),
			Drift:    r.Delta != 0,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_id": accountID,
		"balances":   out,
	})
}
