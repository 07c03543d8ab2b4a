package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

type walletRef struct {
	accountID int64
	currency  string
}

type inMemoryStore struct {
	mu      sync.RWMutex
	wallets map[int64]walletRef
	entries []Entry
	nextID  int64
}

// NewInMemory creates a concurrency-safe in-memory entry store useful for
// unit tests and running without a database.
func NewInMemory() Store {
	return &inMemoryStore{wallets: make(map[int64]walletRef), nextID: 1}
}

func (s *inMemoryStore) registerWallet(walletID, accountID int64, currency string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets[walletID] = walletRef{accountID: accountID, currency: currency}
}

func (s *inMemoryStore) append(e Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.nextID
	}
	if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	if ref, ok := s.wallets[e.WalletID]; ok {
		e.AccountID = ref.accountID
		e.Currency = ref.currency
	}
	e.CreatedAt = e.CreatedAt.UTC()
	s.entries = append(s.entries, e)
	return e
}

func (s *inMemoryStore) Page(_ context.Context, q PageQuery) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.collect(func(e Entry) bool {
		if e.AccountID != q.AccountID || !e.Confirmed {
			return false
		}
		if q.Currency != "" && e.Currency != q.Currency {
			return false
		}
		if q.Type != "" && e.Type != q.Type {
			return false
		}
		if q.Before != nil && !e.Position().Before(*q.Before) {
			return false
		}
		if q.After != nil && !e.Position().After(*q.After) {
			return false
		}
		return true
	})

	ascending := q.After != nil
	sort.Slice(matched, func(i, j int) bool {
		if ascending {
			return matched[i].Position().Before(matched[j].Position())
		}
		return matched[j].Position().Before(matched[i].Position())
	})

	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *inMemoryStore) SumConfirmed(_ context.Context, walletID int64, asOf time.Time) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum int64
	for _, e := range s.entries {
		if e.WalletID != walletID || !e.Confirmed {
			continue
		}
		if !asOf.IsZero() && e.CreatedAt.After(asOf) {
			continue
		}
		sum += e.Amount
	}
	return sum, nil
}

func (s *inMemoryStore) ConfirmedSince(_ context.Context, accountID int64, since time.Time, currency string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.collect(func(e Entry) bool {
		if e.AccountID != accountID || !e.Confirmed {
			return false
		}
		if currency != "" && e.Currency != currency {
			return false
		}
		return e.CreatedAt.After(since)
	})

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Position().Before(matched[j].Position())
	})
	return matched, nil
}

// collect copies matching entries; callers must hold the read lock.
func (s *inMemoryStore) collect(match func(Entry) bool) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if match(e) {
			out = append(out, e)
		}
	}
	return out
}
