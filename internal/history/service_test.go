package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blexpay/backoffice/internal/ledger"
)

const testAccountID = int64(7)

// seedHistory loads n confirmed ARS deposits one minute apart and returns
// them newest first.
func seedHistory(t *testing.T, store ledger.Store, n int) []ledger.Entry {
	t.Helper()
	ledger.SeedWallet(store, 1, testAccountID, "ARS")

	base := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	entries := make([]ledger.Entry, 0, n)
	for i := 0; i < n; i++ {
		e := ledger.SeedEntry(store, ledger.Entry{
			WalletID:  1,
			Type:      ledger.TypeDeposit,
			Amount:    int64(i+1) * 1_00,
			Confirmed: true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		entries = append(entries, e)
	}
	// Newest first, matching presentation order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func TestPageWalkReproducesFullHistory(t *testing.T) {
	store := ledger.NewInMemory()
	want := seedHistory(t, store, 23)
	svc := NewService(store)
	ctx := context.Background()

	var collected []ledger.Entry
	cursor := ""
	for pages := 0; ; pages++ {
		if pages > 10 {
			t.Fatal("pagination did not terminate")
		}
		page, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, Cursor: cursor, Direction: DirectionOlder, PageSize: 5})
		if err != nil {
			t.Fatalf("page %d: %v", pages, err)
		}
		collected = append(collected, page.Entries...)
		if !page.HasMore {
			break
		}
		cursor = page.Cursors.Next
	}

	if len(collected) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(collected))
	}
	seen := make(map[int64]bool, len(collected))
	for i, e := range collected {
		if seen[e.ID] {
			t.Fatalf("entry %d appeared twice", e.ID)
		}
		seen[e.ID] = true
		if e.ID != want[i].ID {
			t.Fatalf("position %d: expected entry %d, got %d", i, want[i].ID, e.ID)
		}
		if i > 0 && !e.Position().Before(collected[i-1].Position()) {
			t.Fatalf("entries not strictly descending at position %d", i)
		}
	}
}

func TestPageCursorRoundTripNoOverlap(t *testing.T) {
	store := ledger.NewInMemory()
	seedHistory(t, store, 12)
	svc := NewService(store)
	ctx := context.Background()

	first, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, PageSize: 5})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	second, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, Cursor: first.Cursors.Next, Direction: DirectionOlder, PageSize: 5})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}

	firstIDs := make(map[int64]bool)
	for _, e := range first.Entries {
		firstIDs[e.ID] = true
	}
	for _, e := range second.Entries {
		if firstIDs[e.ID] {
			t.Fatalf("entry %d appears in both pages", e.ID)
		}
	}
}

func TestPageNewerDirection(t *testing.T) {
	store := ledger.NewInMemory()
	seedHistory(t, store, 10)
	svc := NewService(store)
	ctx := context.Background()

	// Walk two pages back, then forward again with the prev cursor.
	first, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, PageSize: 4})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	second, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, Cursor: first.Cursors.Next, Direction: DirectionOlder, PageSize: 4})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}

	forward, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, Cursor: second.Cursors.Prev, Direction: DirectionNewer, PageSize: 4})
	if err != nil {
		t.Fatalf("newer page: %v", err)
	}

	if len(forward.Entries) != 4 {
		t.Fatalf("expected 4 entries going forward, got %d", len(forward.Entries))
	}
	// The forward page is the first page again, most recent first.
	for i, e := range forward.Entries {
		if e.ID != first.Entries[i].ID {
			t.Fatalf("position %d: expected entry %d, got %d", i, first.Entries[i].ID, e.ID)
		}
	}
}

func TestPageNewerRequiresCursor(t *testing.T) {
	svc := NewService(ledger.NewInMemory())

	_, err := svc.Page(context.Background(), PageRequest{AccountID: testAccountID, Direction: DirectionNewer, PageSize: 5})
	if !errors.Is(err, ErrCursorRequired) {
		t.Fatalf("expected ErrCursorRequired, got %v", err)
	}
}

func TestPageSizeClamping(t *testing.T) {
	store := ledger.NewInMemory()
	seedHistory(t, store, 60)
	svc := NewService(store)
	ctx := context.Background()

	over, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, PageSize: 500})
	if err != nil {
		t.Fatalf("oversized page: %v", err)
	}
	if len(over.Entries) != MaxPageSize {
		t.Fatalf("expected clamp to %d, got %d", MaxPageSize, len(over.Entries))
	}

	tiny, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, PageSize: -3})
	if err != nil {
		t.Fatalf("negative page size: %v", err)
	}
	if len(tiny.Entries) != 1 {
		t.Fatalf("expected clamp to 1, got %d", len(tiny.Entries))
	}
}

func TestPageHasMoreExactOnBoundary(t *testing.T) {
	store := ledger.NewInMemory()
	seedHistory(t, store, 5)
	svc := NewService(store)
	ctx := context.Background()

	// The page is full but nothing follows; the surplus-row probe must
	// report no more.
	page, err := svc.Page(ctx, PageRequest{AccountID: testAccountID, PageSize: 5})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Entries) != 5 {
		t.Fatalf("expected full page, got %d", len(page.Entries))
	}
	if page.HasMore {
		t.Fatal("expected HasMore=false on exact boundary")
	}
}

func TestPageUnknownAccountIsEmpty(t *testing.T) {
	svc := NewService(ledger.NewInMemory())

	page, err := svc.Page(context.Background(), PageRequest{AccountID: 999, PageSize: 10})
	if err != nil {
		t.Fatalf("unknown account: %v", err)
	}
	if len(page.Entries) != 0 || page.HasMore {
		t.Fatalf("expected empty page, got %d entries hasMore=%v", len(page.Entries), page.HasMore)
	}
	if page.Cursors.Next != "" || page.Cursors.Prev != "" {
		t.Fatalf("expected no cursors for empty page, got %+v", page.Cursors)
	}
}

func TestPageExcludesUnconfirmed(t *testing.T) {
	store := ledger.NewInMemory()
	seedHistory(t, store, 3)
	ledger.SeedEntry(store, ledger.Entry{
		WalletID:  1,
		Type:      ledger.TypeDeposit,
		Amount:    100_00,
		Confirmed: false,
		CreatedAt: time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC),
	})
	svc := NewService(store)

	page, err := svc.Page(context.Background(), PageRequest{AccountID: testAccountID, PageSize: 10})
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if len(page.Entries) != 3 {
		t.Fatalf("unconfirmed entry leaked into history: %d entries", len(page.Entries))
	}
}

func TestSince(t *testing.T) {
	store := ledger.NewInMemory()
	entries := seedHistory(t, store, 4)
	svc := NewService(store)

	// Entries are newest first; poll from the second-newest position.
	cutoff := entries[1].CreatedAt
	fresh, err := svc.Since(context.Background(), testAccountID, cutoff, "")
	if err != nil {
		t.Fatalf("since: %v", err)
	}
	if len(fresh) != 1 || fresh[0].ID != entries[0].ID {
		t.Fatalf("expected only the newest entry, got %+v", fresh)
	}
}
