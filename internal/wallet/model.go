// Package wallet reads the cached (account, currency) balance records the
// wallet platform maintains. The cache is expected to equal the sum of the
// wallet's confirmed ledger entries but is not guaranteed to; reconciling
// the two is the report package's job.
package wallet

import (
	"errors"
	"time"
)

// ErrNotFound indicates no wallet exists for the (account, currency) pair.
var ErrNotFound = errors.New("wallet not found")

// Wallet is an (account, currency) pair holding a cached balance in minor
// units. Wallets are never deleted.
type Wallet struct {
	ID        int64
	AccountID int64
	Currency  string
	Balance   int64
	UpdatedAt time.Time
}
