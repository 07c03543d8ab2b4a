package ledger

import (
	"context"
	"time"
)

// Engine answers point-in-time balance questions by replaying confirmed
// entries through the Store. It never mutates stored state.
type Engine struct {
	store Store
}

// NewEngine builds a query engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// BalanceAsOf returns the wallet balance derived from confirmed entries
// created at or before asOf. A zero asOf means "now" (no upper bound).
// A wallet with no matching entries yields zero, not an error.
func (e *Engine) BalanceAsOf(ctx context.Context, walletID int64, asOf time.Time) (int64, error) {
	return e.store.SumConfirmed(ctx, walletID, asOf)
}

// RunningEntry pairs an entry with the cumulative sum of all matching
// entries up to and including itself.
type RunningEntry struct {
	Entry
	Running int64
}

// RunningBalance computes a single-pass prefix sum over entries already
// sorted ascending by the composite (CreatedAt, ID) key. Entries not
// matching the currency filter are skipped; an empty currency matches all.
func RunningBalance(entries []Entry, currency string) []RunningEntry {
	out := make([]RunningEntry, 0, len(entries))
	var sum int64
	for _, entry := range entries {
		if currency != "" && entry.Currency != currency {
			continue
		}
		sum += entry.Amount
		out = append(out, RunningEntry{Entry: entry, Running: sum})
	}
	return out
}
