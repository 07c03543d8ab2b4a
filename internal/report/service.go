// Package report reconciles cached wallet balances against balances
// replayed from the ledger. Reconciliation is read-only: drift is reported
// as data for operational follow-up, never treated as an error and never
// corrected in place.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blexpay/backoffice/internal/ledger"
	"github.com/blexpay/backoffice/internal/notification"
	"github.com/blexpay/backoffice/internal/wallet"
)

// ErrAccountNotFound indicates the account holds no wallets at all. This
// is distinct from an account whose wallets simply have no entries: an
// empty reconciliation for a nonexistent account would be misleading.
var ErrAccountNotFound = errors.New("account not found")

// CurrencyReport compares one wallet's cached balance with the balance
// computed from confirmed ledger entries. Amounts are minor units.
type CurrencyReport struct {
	Currency string
	Cached   int64
	Computed int64
	Delta    int64 // cached minus computed; non-zero signals drift
}

// Service composes the wallet read model with the ledger query engine.
type Service struct {
	wallets  wallet.Repository
	engine   *ledger.Engine
	notifier notification.Notifier
}

// NewService builds a reconciliation report service.
func NewService(wallets wallet.Repository, engine *ledger.Engine, notifier notification.Notifier) *Service {
	return &Service{wallets: wallets, engine: engine, notifier: notifier}
}

// BalanceReport reconciles every wallet the account holds. A zero asOf
// computes against all confirmed entries ("now").
func (s *Service) BalanceReport(ctx context.Context, accountID int64, asOf time.Time) ([]CurrencyReport, error) {
	held, err := s.wallets.ByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if len(held) == 0 {
		return nil, ErrAccountNotFound
	}

	reports := make([]CurrencyReport, 0, len(held))
	for _, w := range held {
		computed, err := s.engine.BalanceAsOf(ctx, w.ID, asOf)
		if err != nil {
			return nil, err
		}
		report := CurrencyReport{
			Currency: w.Currency,
			Cached:   w.Balance,
			Computed: computed,
			Delta:    w.Balance - computed,
		}
		if report.Delta != 0 && s.notifier != nil {
			// Best effort: drift is data, a failed notification must not
			// fail the report.
			_ = s.notifier.Send(ctx, notification.Message{
				Kind:    notification.KindBalanceDrift,
				Subject: fmt.Sprintf("account %d %s", accountID, w.Currency),
				Body:    fmt.Sprintf("cached %d, computed %d, delta %d", report.Cached, report.Computed, report.Delta),
			})
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Reconcile reports on a single (account, currency) wallet.
func (s *Service) Reconcile(ctx context.Context, accountID int64, currency string) (CurrencyReport, error) {
	w, err := s.wallets.Get(ctx, accountID, currency)
	if err != nil {
		if errors.Is(err, wallet.ErrNotFound) {
			return CurrencyReport{}, ErrAccountNotFound
		}
		return CurrencyReport{}, err
	}

	computed, err := s.engine.BalanceAsOf(ctx, w.ID, time.Time{})
	if err != nil {
		return CurrencyReport{}, err
	}
	return CurrencyReport{
		Currency: w.Currency,
		Cached:   w.Balance,
		Computed: computed,
		Delta:    w.Balance - computed,
	}, nil
}
