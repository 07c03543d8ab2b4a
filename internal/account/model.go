// Package account reads the registered account roster: names, contact and
// tax identifiers, lifecycle state and per-currency balances. Account
// writes happen in the wallet platform, not here.
package account

import (
	"errors"
	"time"
)

// ErrNotFound indicates no account exists for the identifier.
var ErrNotFound = errors.New("account not found")

// Lifecycle states. Closed is terminal: ClosedAt is set once and never
// cleared.
const (
	StateActive = "active"
	StateClosed = "closed"
)

// Account is a party holding one or more wallets.
type Account struct {
	ID        int64
	Name      string
	Email     string
	CUIT      string
	CVU       string
	State     string
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// Active reports whether the account is still open.
func (a Account) Active() bool {
	return a.ClosedAt == nil
}
