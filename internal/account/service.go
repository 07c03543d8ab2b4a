package account

import (
	"context"

	"github.com/blexpay/backoffice/internal/wallet"
)

// Service joins the account roster with cached wallet balances.
type Service struct {
	repo    Repository
	wallets wallet.Repository
}

// NewService builds an account service.
func NewService(repo Repository, wallets wallet.Repository) *Service {
	return &Service{repo: repo, wallets: wallets}
}

// Detail is an account together with its per-currency balances.
type Detail struct {
	Account
	Wallets []wallet.Wallet
}

// ListResult is one roster page plus paging metadata.
type ListResult struct {
	Accounts   []Detail
	Total      int
	Page       int
	TotalPages int
}

// List returns a filtered roster page with balances attached.
func (s *Service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	accounts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}

	details := make([]Detail, 0, len(accounts))
	for _, a := range accounts {
		held, err := s.wallets.ByAccount(ctx, a.ID)
		if err != nil {
			return ListResult{}, err
		}
		details = append(details, Detail{Account: a, Wallets: held})
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit

	return ListResult{Accounts: details, Total: total, Page: page, TotalPages: totalPages}, nil
}

// Get fetches one account with balances attached.
func (s *Service) Get(ctx context.Context, id int64) (Detail, error) {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	held, err := s.wallets.ByAccount(ctx, a.ID)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Account: a, Wallets: held}, nil
}
