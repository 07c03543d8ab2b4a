package wallet

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository is an in-memory wallet store for tests and running
// without a database.
type MemoryRepository struct {
	mu      sync.RWMutex
	wallets []Wallet
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Seed adds or replaces a wallet record.
func (r *MemoryRepository) Seed(w Wallet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.wallets {
		if existing.AccountID == w.AccountID && existing.Currency == w.Currency {
			r.wallets[i] = w
			return
		}
	}
	r.wallets = append(r.wallets, w)
}

// Get fetches the wallet for an (account, currency) pair.
func (r *MemoryRepository) Get(_ context.Context, accountID int64, currency string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.AccountID == accountID && w.Currency == currency {
			return w, nil
		}
	}
	return Wallet{}, ErrNotFound
}

// ByAccount lists all wallets held by an account, ordered by currency.
func (r *MemoryRepository) ByAccount(_ context.Context, accountID int64) ([]Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Wallet
	for _, w := range r.wallets {
		if w.AccountID == accountID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}
