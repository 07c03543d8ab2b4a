package ledger

import (
	"context"
	"testing"
	"time"
)

func seedDeposits(t *testing.T, store Store, walletID int64, base time.Time, amounts ...int64) []Entry {
	t.Helper()
	entries := make([]Entry, 0, len(amounts))
	for i, amount := range amounts {
		entries = append(entries, SeedEntry(store, Entry{
			WalletID:  walletID,
			Type:      TypeDeposit,
			Amount:    amount,
			Confirmed: true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	return entries
}

func TestEngineBalanceAsOf(t *testing.T) {
	store := NewInMemory()
	SeedWallet(store, 1, 10, "ARS")
	engine := NewEngine(store)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedDeposits(t, store, 1, base, 100_00, 250_00, 50_00)

	balance, err := engine.BalanceAsOf(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("balance as of now: %v", err)
	}
	if balance != 400_00 {
		t.Fatalf("expected 40000, got %d", balance)
	}

	// Repeated calls with no new entries are idempotent.
	again, err := engine.BalanceAsOf(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("second balance call: %v", err)
	}
	if again != balance {
		t.Fatalf("expected identical balance, got %d then %d", balance, again)
	}

	// The upper bound is inclusive of entries created exactly at asOf.
	atSecond, err := engine.BalanceAsOf(ctx, 1, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("balance as of second entry: %v", err)
	}
	if atSecond != 350_00 {
		t.Fatalf("expected 35000 as of second entry, got %d", atSecond)
	}

	beforeAll, err := engine.BalanceAsOf(ctx, 1, base.Add(-time.Hour))
	if err != nil {
		t.Fatalf("balance before all entries: %v", err)
	}
	if beforeAll != 0 {
		t.Fatalf("expected zero before any entries, got %d", beforeAll)
	}
}

func TestEngineBalanceAsOfMonotonicForDeposits(t *testing.T) {
	store := NewInMemory()
	SeedWallet(store, 1, 10, "ARS")
	engine := NewEngine(store)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedDeposits(t, store, 1, base, 10_00, 20_00, 30_00, 40_00)

	var previous int64
	for i := 0; i < 6; i++ {
		balance, err := engine.BalanceAsOf(ctx, 1, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("balance at step %d: %v", i, err)
		}
		if balance < previous {
			t.Fatalf("balance decreased from %d to %d at step %d", previous, balance, i)
		}
		previous = balance
	}

	// Any asOf past the newest entry yields the final balance.
	final, err := engine.BalanceAsOf(ctx, 1, base.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("balance far in the future: %v", err)
	}
	if final != 100_00 {
		t.Fatalf("expected 10000, got %d", final)
	}
}

func TestEngineBalanceExcludesUnconfirmed(t *testing.T) {
	store := NewInMemory()
	SeedWallet(store, 1, 10, "ARS")
	engine := NewEngine(store)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedDeposits(t, store, 1, base, 150_00)
	SeedEntry(store, Entry{WalletID: 1, Type: TypeDeposit, Amount: 100_00, Confirmed: false, CreatedAt: base.Add(time.Hour)})

	balance, err := engine.BalanceAsOf(ctx, 1, time.Time{})
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 150_00 {
		t.Fatalf("unconfirmed entry leaked into balance: got %d", balance)
	}
}

func TestEngineBalanceEmptyWallet(t *testing.T) {
	store := NewInMemory()
	SeedWallet(store, 1, 10, "ARS")
	engine := NewEngine(store)

	balance, err := engine.BalanceAsOf(context.Background(), 1, time.Time{})
	if err != nil {
		t.Fatalf("balance of empty wallet: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestRunningBalance(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: 1, Currency: "ARS", Amount: 100_00, CreatedAt: base},
		{ID: 2, Currency: "USD", Amount: 5_00, CreatedAt: base.Add(time.Minute)},
		{ID: 3, Currency: "ARS", Amount: -30_00, CreatedAt: base.Add(2 * time.Minute)},
		{ID: 4, Currency: "ARS", Amount: 10_00, CreatedAt: base.Add(3 * time.Minute)},
	}

	annotated := RunningBalance(entries, "ARS")
	if len(annotated) != 3 {
		t.Fatalf("expected 3 ARS entries, got %d", len(annotated))
	}
	want := []int64{100_00, 70_00, 80_00}
	for i, re := range annotated {
		if re.Running != want[i] {
			t.Fatalf("entry %d: expected running %d, got %d", re.ID, want[i], re.Running)
		}
	}

	all := RunningBalance(entries, "")
	if len(all) != 4 {
		t.Fatalf("expected all entries without filter, got %d", len(all))
	}
	if all[3].Running != 85_00 {
		t.Fatalf("expected final running 8500, got %d", all[3].Running)
	}
}
