// Package history serves bounded, stable traversal of an account's ledger
// history using opaque cursors instead of offset pagination, which is
// unstable while new entries are being appended.
package history

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blexpay/backoffice/internal/ledger"
)

// ErrInvalidCursor indicates a cursor token that could not be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor pins a traversal boundary in the composite (created_at, id)
// entry ordering. It travels as a single opaque token so neither field is
// ever inferred from string shape.
type Cursor struct {
	CreatedAt time.Time `json:"t"`
	ID        int64     `json:"i"`
}

// CursorFor derives the cursor pointing at an entry's position.
func CursorFor(e ledger.Entry) Cursor {
	return Cursor{CreatedAt: e.CreatedAt, ID: e.ID}
}

// Position converts the cursor into a store position.
func (c Cursor) Position() ledger.Position {
	return ledger.Position{CreatedAt: c.CreatedAt, ID: c.ID}
}

// Token encodes the cursor as a URL-safe opaque string.
func (c Cursor) Token() string {
	payload, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(payload)
}

// ParseCursor decodes an opaque cursor token.
func ParseCursor(token string) (Cursor, error) {
	payload, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var c Cursor
	if err := json.Unmarshal(payload, &c); err != nil {
		return Cursor{}, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if c.CreatedAt.IsZero() && c.ID == 0 {
		return Cursor{}, fmt.Errorf("%w: empty position", ErrInvalidCursor)
	}
	return c, nil
}
