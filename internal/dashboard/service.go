package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/blexpay/backoffice/internal/wallet"
)

// ErrUnknownCurrency indicates a currency code outside the supported set.
var ErrUnknownCurrency = errors.New("unknown currency")

const defaultRecentLimit = 5

// Stats is the dashboard headline block.
type Stats struct {
	ActiveAccounts   int64
	InactiveAccounts int64
	Totals           []CurrencyTotal
}

// Service validates inputs and shapes dashboard aggregates.
type Service struct {
	store Store
}

// NewService builds a dashboard service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Stats returns account counts and per-currency balance totals.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	active, inactive, err := s.store.AccountCounts(ctx)
	if err != nil {
		return Stats{}, err
	}
	totals, err := s.store.BalanceTotals(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{ActiveAccounts: active, InactiveAccounts: inactive, Totals: totals}, nil
}

// MonthlyMovement returns twelve monthly inbound totals for a currency.
// A zero year defaults to the current year.
func (s *Service) MonthlyMovement(ctx context.Context, currency string, year int) ([12]int64, error) {
	if !wallet.Supported(currency) {
		return [12]int64{}, ErrUnknownCurrency
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	return s.store.MonthlyInbound(ctx, currency, year)
}

// Recent returns the latest confirmed movements across all accounts.
func (s *Service) Recent(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.store.Recent(ctx, limit)
}
