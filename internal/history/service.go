package history

import (
	"context"
	"errors"
	"time"

	"github.com/blexpay/backoffice/internal/ledger"
)

// Traversal directions relative to a cursor position.
const (
	DirectionOlder = "older"
	DirectionNewer = "newer"
)

// Page size bounds. Requests above the maximum are clamped, never
// rejected; zero or negative explicit sizes are clamped to one.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

var (
	// ErrCursorRequired is returned for a "newer" traversal without a
	// cursor: there is no well-defined newest sentinel to start from.
	ErrCursorRequired = errors.New("cursor required for newer direction")

	// ErrInvalidDirection indicates a direction other than older/newer.
	ErrInvalidDirection = errors.New("invalid direction")
)

// Service is the cursor pagination engine. It carries no per-request
// state; every call is fully described by its PageRequest.
type Service struct {
	store ledger.Store
}

// NewService builds a pagination service over the given store.
func NewService(store ledger.Store) *Service {
	return &Service{store: store}
}

// PageRequest describes a single bounded history fetch.
type PageRequest struct {
	AccountID int64
	Currency  string // optional filter
	Type      string // optional filter
	Cursor    string // opaque token, empty to start at the newest end
	Direction string // older (default) or newer
	PageSize  int    // <= 0 clamps to 1, capped at MaxPageSize
}

// Cursors carries the continuation positions for both directions.
type Cursors struct {
	Next string `json:"next"` // position of the oldest entry in the page
	Prev string `json:"prev"` // position of the newest entry in the page
}

// Page is one bounded slice of history in canonical most-recent-first
// order.
type Page struct {
	Entries []ledger.Entry
	HasMore bool
	Cursors Cursors
}

// Page fetches one page of confirmed history. An unknown account yields
// an empty page, not an error. HasMore is exact: one surplus row is
// fetched and discarded to probe for a following page.
func (s *Service) Page(ctx context.Context, req PageRequest) (Page, error) {
	size := clampPageSize(req.PageSize)

	direction := req.Direction
	if direction == "" {
		direction = DirectionOlder
	}
	if direction != DirectionOlder && direction != DirectionNewer {
		return Page{}, ErrInvalidDirection
	}

	query := ledger.PageQuery{
		AccountID: req.AccountID,
		Currency:  req.Currency,
		Type:      req.Type,
		Limit:     size + 1,
	}

	if req.Cursor != "" {
		cursor, err := ParseCursor(req.Cursor)
		if err != nil {
			return Page{}, err
		}
		pos := cursor.Position()
		if direction == DirectionOlder {
			query.Before = &pos
		} else {
			query.After = &pos
		}
	} else if direction == DirectionNewer {
		return Page{}, ErrCursorRequired
	}

	entries, err := s.store.Page(ctx, query)
	if err != nil {
		return Page{}, err
	}

	hasMore := len(entries) > size
	if hasMore {
		entries = entries[:size]
	}

	// Newer traversal queries ascending; flip to the canonical
	// most-recent-first presentation order.
	if direction == DirectionNewer {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	page := Page{Entries: entries, HasMore: hasMore}
	if len(entries) > 0 {
		page.Cursors.Next = CursorFor(entries[len(entries)-1]).Token()
		page.Cursors.Prev = CursorFor(entries[0]).Token()
	}
	return page, nil
}

// Since returns confirmed entries created strictly after the given
// instant, oldest first. Used by polling clients to pick up new activity.
func (s *Service) Since(ctx context.Context, accountID int64, since time.Time, currency string) ([]ledger.Entry, error) {
	return s.store.ConfirmedSince(ctx, accountID, since, currency)
}

func clampPageSize(size int) int {
	if size <= 0 {
		return 1
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}
