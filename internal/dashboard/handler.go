package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/money"
	"github.com/blexpay/backoffice/internal/wallet"
)

// Month labels as the back-office UI renders them.
var monthLabels = []string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// Handler exposes dashboard HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a dashboard HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats serves the headline counters and balance totals.
func (h *Handler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}

	balances := make(map[string]string, len(stats.Totals))
	for _, t := range stats.Totals {
		balances[t.Currency] = money.Format(t.Total)
	}
	// Every supported currency appears even with no wallets yet.
	for _, code := range wallet.SupportedCurrencies {
		if _, ok := balances[code]; !ok {
			balances[code] = money.Format(0)
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"active_accounts":   stats.ActiveAccounts,
		"inactive_accounts": stats.InactiveAccounts,
		"total_balances":    balances,
	})
}

// MonthlyMovement serves the twelve-bucket inbound volume series.
func (h *Handler) MonthlyMovement(c *fiber.Ctx) error {
	currency := c.Query("currency", wallet.CurrencyARS)
	year := c.QueryInt("year", 0)

	months, err := h.service.MonthlyMovement(c.UserContext(), currency, year)
	if err != nil {
		if errors.Is(err, ErrUnknownCurrency) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	data := make([]string, 0, len(months))
	for _, total := range months {
		data = append(data, money.Format(total))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"labels":   monthLabels,
		"data":     data,
		"currency": currency,
	})
}

// Recent serves the latest confirmed movements across all accounts.
func (h *Handler) Recent(c *fiber.Ctx) error {
	activity, err := h.service.Recent(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(activity))
	for _, a := range activity {
		items = append(items, fiber.Map{
			"account":  a.AccountName,
			"cvu":      a.CVU,
			"type":     a.Type,
			"currency": a.Currency,
			"amount":   money.Format(a.Amount),
			"date":     a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"activity": items,
		"count":    len(items),
	})
}
