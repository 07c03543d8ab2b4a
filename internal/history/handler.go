package history

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/ledger"
	"github.com/blexpay/backoffice/internal/money"
)

// Handler exposes transaction history HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a history HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type entryResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Currency    string `json:"currency"`
	Amount      string `json:"amount"`
	Description string `json:"description,omitempty"`
	Running     string `json:"running_balance,omitempty"`
}

type pageResponse struct {
	Transactions []entryResponse `json:"transactions"`
	Count        int             `json:"count"`
	HasMore      bool            `json:"has_more"`
	Cursors      Cursors         `json:"cursors"`
}

// Page serves one cursor-bounded page of an account's history.
func (h *Handler) Page(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	req := PageRequest{
		AccountID: int64(accountID),
		Currency:  c.Query("currency"),
		Type:      c.Query("type"),
		Cursor:    c.Query("cursor"),
		Direction: c.Query("direction", DirectionOlder),
		PageSize:  c.QueryInt("limit", DefaultPageSize),
	}

	page, err := h.service.Page(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCursor) || errors.Is(err, ErrCursorRequired) || errors.Is(err, ErrInvalidDirection) {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	resp := pageResponse{
		Transactions: make([]entryResponse, 0, len(page.Entries)),
		Count:        len(page.Entries),
		HasMore:      page.HasMore,
		Cursors:      page.Cursors,
	}

	// Running balances are only meaningful for a single currency; the
	// prefix sum runs oldest-first over the page.
	var running map[int64]int64
	if c.QueryBool("running") && req.Currency != "" {
		ascending := make([]ledger.Entry, len(page.Entries))
		for i, e := range page.Entries {
			ascending[len(page.Entries)-1-i] = e
		}
		running = make(map[int64]int64, len(ascending))
		for _, re := range ledger.RunningBalance(ascending, req.Currency) {
			running[re.ID] = re.Running
		}
	}

	for _, e := range page.Entries {
		item := entryResponse{
			ID:          e.ID,
			Date:        e.CreatedAt.UTC().Format(time.RFC3339),
			Type:        e.Type,
			Currency:    e.Currency,
			Amount:      money.Format(e.Amount),
			Description: e.Description,
		}
		if running != nil {
			item.Running = money.Format(running[e.ID])
		}
		resp.Transactions = append(resp.Transactions, item)
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// Since serves confirmed entries created after a timestamp, oldest first,
// for polling clients.
func (h *Handler) Since(c *fiber.Ctx) error {
	accountID, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	sinceParam := c.Query("since")
	if sinceParam == "" {
		return fiber.NewError(http.StatusBadRequest, "since parameter is required")
	}
	since, err := time.Parse(time.RFC3339, sinceParam)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "since must be an RFC3339 timestamp")
	}

	entries, err := h.service.Since(c.UserContext(), int64(accountID), since, c.Query("currency"))
	if err != nil {
		return err
	}

	items := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryResponse{
			ID:          e.ID,
			Date:        e.CreatedAt.UTC().Format(time.RFC3339),
			Type:        e.Type,
			Currency:    e.Currency,
			Amount:      money.Format(e.Amount),
			Description: e.Description,
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"new_transactions": items,
		"count":            len(items),
		"last_checked":     time.Now().UTC().Format(time.RFC3339),
	})
}
