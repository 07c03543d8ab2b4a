package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/blexpay/backoffice/internal/money"
)

// Handler exposes account roster HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds an account HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type accountResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	CUIT       string            `json:"cuit,omitempty"`
	CVU        string            `json:"cvu,omitempty"`
	State      string            `json:"state"`
	Registered string            `json:"registered_at"`
	ClosedAt   string            `json:"closed_at,omitempty"`
	Balances   map[string]string `json:"balances"`
}

func toResponse(d Detail) accountResponse {
	resp := accountResponse{
		ID:         d.ID,
		Name:       d.Name,
		Email:      d.Email,
		CUIT:       d.CUIT,
		CVU:        d.CVU,
		State:      d.State,
		Registered: d.CreatedAt.UTC().Format(time.RFC3339),
		Balances:   make(map[string]string, len(d.Wallets)),
	}
	if d.ClosedAt != nil {
		resp.ClosedAt = d.ClosedAt.UTC().Format(time.RFC3339)
	}
	for _, w := range d.Wallets {
		resp.Balances[w.Currency] = money.Format(w.Balance)
	}
	return resp
}

// List serves the filtered, paged account roster.
func (h *Handler) List(c *fiber.Ctx) error {
	filter := ListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 10),
	}

	result, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	accounts := make([]accountResponse, 0, len(result.Accounts))
	for _, d := range result.Accounts {
		accounts = append(accounts, toResponse(d))
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"accounts":    accounts,
		"total":       result.Total,
		"page":        result.Page,
		"total_pages": result.TotalPages,
	})
}

// Get serves a single account's detail.
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid account id")
	}

	detail, err := h.service.Get(c.UserContext(), int64(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return c.Status(http.StatusOK).JSON(toResponse(detail))
}
