package dashboard

import (
	"context"
	"sync"
)

// MemoryStore serves dashboard aggregates from seeded data. It exists so
// the app can boot without a database in development.
type MemoryStore struct {
	mu       sync.RWMutex
	active   int64
	inactive int64
	totals   []CurrencyTotal
	inbound  map[string]map[int][12]int64 // currency -> year -> months
	activity []Activity
}

// NewMemoryStore constructs an empty in-memory dashboard store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{inbound: make(map[string]map[int][12]int64)}
}

// SeedCounts sets the account counters.
func (s *MemoryStore) SeedCounts(active, inactive int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active, s.inactive = active, inactive
}

// SeedTotals replaces the per-currency balance totals.
func (s *MemoryStore) SeedTotals(totals []CurrencyTotal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals = totals
}

// SeedInbound sets the monthly inbound series for a currency and year.
func (s *MemoryStore) SeedInbound(currency string, year int, months [12]int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inbound[currency] == nil {
		s.inbound[currency] = make(map[int][12]int64)
	}
	s.inbound[currency][year] = months
}

// SeedActivity replaces the recent-activity feed, newest first.
func (s *MemoryStore) SeedActivity(activity []Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = activity
}

// AccountCounts returns the number of active and non-active accounts.
func (s *MemoryStore) AccountCounts(_ context.Context) (int64, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active, s.inactive, nil
}

// BalanceTotals sums cached wallet balances per currency.
func (s *MemoryStore) BalanceTotals(_ context.Context) ([]CurrencyTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CurrencyTotal, len(s.totals))
	copy(out, s.totals)
	return out, nil
}

// MonthlyInbound buckets confirmed inbound volume by calendar month.
func (s *MemoryStore) MonthlyInbound(_ context.Context, currency string, year int) ([12]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inbound[currency][year], nil
}

// Recent returns the latest confirmed movements, newest first.
func (s *MemoryStore) Recent(_ context.Context, limit int) ([]Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit > len(s.activity) {
		limit = len(s.activity)
	}
	out := make([]Activity, limit)
	copy(out, s.activity[:limit])
	return out, nil
}
