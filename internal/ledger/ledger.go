// Package ledger exposes read-only access to the append-only transactions
// table and derives wallet balances by replaying confirmed entries.
package ledger

import (
	"context"
	"errors"
	"time"
)

// ErrWalletNotFound indicates the referenced wallet does not exist, as
// opposed to existing with no entries.
var ErrWalletNotFound = errors.New("wallet not found")

// Entry types mirror the transaction rows written by the wallet platform.
const (
	TypeDeposit          = "deposit"
	TypeWithdraw         = "withdraw"
	TypeTransferSent     = "transfer:sent"
	TypeTransferReceived = "transfer:received"
	TypeExchangeBuy      = "exchange:buy"
	TypeExchangeSell     = "exchange:sell"
)

// Entry is an immutable monetary movement against a wallet. Amount is
// signed and expressed in minor units. Unconfirmed entries never appear in
// balances or user-facing history.
type Entry struct {
	ID          int64
	WalletID    int64
	AccountID   int64
	Currency    string
	Type        string
	Amount      int64
	Confirmed   bool
	Description string
	CreatedAt   time.Time
}

// Position identifies a point in the composite (CreatedAt, ID) ordering.
// Timestamps are not unique, so the pair is always compared as a tuple.
type Position struct {
	CreatedAt time.Time
	ID        int64
}

// Position returns the entry's place in the composite ordering.
func (e Entry) Position() Position {
	return Position{CreatedAt: e.CreatedAt, ID: e.ID}
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.CreatedAt.Before(q.CreatedAt) {
		return true
	}
	if p.CreatedAt.Equal(q.CreatedAt) {
		return p.ID < q.ID
	}
	return false
}

// After reports whether p sorts strictly after q.
func (p Position) After(q Position) bool {
	return q.Before(p)
}

// PageQuery bounds a single fetch of confirmed entries for one account.
// At most one of Before/After is set: Before returns rows strictly before
// the position in descending order, After returns rows strictly after it
// in ascending order. With neither set the newest rows come first.
type PageQuery struct {
	AccountID int64
	Currency  string // optional filter
	Type      string // optional filter
	Before    *Position
	After     *Position
	Limit     int
}

// Store is the contract implemented by entry storage backends. All methods
// observe only confirmed entries.
type Store interface {
	// Page fetches a bounded slice of an account's history per PageQuery.
	Page(ctx context.Context, q PageQuery) ([]Entry, error)
	// SumConfirmed totals the signed amounts of a wallet's confirmed
	// entries created at or before asOf. A zero asOf means no upper bound.
	SumConfirmed(ctx context.Context, walletID int64, asOf time.Time) (int64, error)
	// ConfirmedSince returns an account's confirmed entries created
	// strictly after the given instant, oldest first.
	ConfirmedSince(ctx context.Context, accountID int64, since time.Time, currency string) ([]Entry, error)
}
