package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blexpay/backoffice/internal/ledger"
	"github.com/blexpay/backoffice/internal/wallet"
)

func setupReport(t *testing.T) (*Service, ledger.Store, *wallet.MemoryRepository) {
	t.Helper()
	store := ledger.NewInMemory()
	wallets := wallet.NewMemoryRepository()
	svc := NewService(wallets, ledger.NewEngine(store), nil)
	return svc, store, wallets
}

func TestReconcileNoDrift(t *testing.T) {
	svc, store, wallets := setupReport(t)
	ctx := context.Background()

	wallets.Seed(wallet.Wallet{ID: 1, AccountID: 10, Currency: "ARS", Balance: 1500_00})
	ledger.SeedWallet(store, 1, 10, "ARS")
	ts := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 1000_00, Confirmed: true, CreatedAt: ts})
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 500_00, Confirmed: true, CreatedAt: ts.Add(time.Hour)})

	report, err := svc.Reconcile(ctx, 10, "ARS")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.Delta != 0 {
		t.Fatalf("expected delta 0, got %d", report.Delta)
	}
	if report.Cached != 1500_00 || report.Computed != 1500_00 {
		t.Fatalf("unexpected amounts: %+v", report)
	}
}

func TestReconcileDetectsDrift(t *testing.T) {
	svc, store, wallets := setupReport(t)
	ctx := context.Background()

	wallets.Seed(wallet.Wallet{ID: 1, AccountID: 10, Currency: "ARS", Balance: 1500_00})
	ledger.SeedWallet(store, 1, 10, "ARS")
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 1495_00, Confirmed: true,
		CreatedAt: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)})

	report, err := svc.Reconcile(ctx, 10, "ARS")
	if err != nil {
		t.Fatalf("drift is data, not an error: %v", err)
	}
	if report.Delta != 5_00 {
		t.Fatalf("expected delta 500, got %d", report.Delta)
	}
}

func TestReconcileUnconfirmedExcluded(t *testing.T) {
	svc, store, wallets := setupReport(t)
	ctx := context.Background()

	wallets.Seed(wallet.Wallet{ID: 1, AccountID: 10, Currency: "ARS", Balance: 100_00})
	ledger.SeedWallet(store, 1, 10, "ARS")
	ts := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 100_00, Confirmed: true, CreatedAt: ts})
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 100_00, Confirmed: false, CreatedAt: ts.Add(time.Minute)})

	report, err := svc.Reconcile(ctx, 10, "ARS")
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if report.Computed != 100_00 || report.Delta != 0 {
		t.Fatalf("unconfirmed entry leaked into computed balance: %+v", report)
	}
}

func TestBalanceReportPerCurrency(t *testing.T) {
	svc, store, wallets := setupReport(t)
	ctx := context.Background()

	wallets.Seed(wallet.Wallet{ID: 1, AccountID: 10, Currency: "ARS", Balance: 200_00})
	wallets.Seed(wallet.Wallet{ID: 2, AccountID: 10, Currency: "USDC", Balance: 50_00})
	ledger.SeedWallet(store, 1, 10, "ARS")
	ledger.SeedWallet(store, 2, 10, "USDC")
	ts := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 200_00, Confirmed: true, CreatedAt: ts})
	ledger.SeedEntry(store, ledger.Entry{WalletID: 2, Type: ledger.TypeDeposit, Amount: 40_00, Confirmed: true, CreatedAt: ts})

	reports, err := svc.BalanceReport(ctx, 10, time.Time{})
	if err != nil {
		t.Fatalf("balance report: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 currency reports, got %d", len(reports))
	}
	byCurrency := make(map[string]CurrencyReport)
	for _, r := range reports {
		byCurrency[r.Currency] = r
	}
	if byCurrency["ARS"].Delta != 0 {
		t.Fatalf("expected ARS delta 0, got %d", byCurrency["ARS"].Delta)
	}
	if byCurrency["USDC"].Delta != 10_00 {
		t.Fatalf("expected USDC delta 1000, got %d", byCurrency["USDC"].Delta)
	}
}

func TestBalanceReportAsOf(t *testing.T) {
	svc, store, wallets := setupReport(t)
	ctx := context.Background()

	wallets.Seed(wallet.Wallet{ID: 1, AccountID: 10, Currency: "ARS", Balance: 300_00})
	ledger.SeedWallet(store, 1, 10, "ARS")
	ts := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 100_00, Confirmed: true, CreatedAt: ts})
	ledger.SeedEntry(store, ledger.Entry{WalletID: 1, Type: ledger.TypeDeposit, Amount: 200_00, Confirmed: true, CreatedAt: ts.Add(time.Hour)})

	reports, err := svc.BalanceReport(ctx, 10, ts)
	if err != nil {
		t.Fatalf("as-of report: %v", err)
	}
	if reports[0].Computed != 100_00 {
		t.Fatalf("expected computed 10000 as of first entry, got %d", reports[0].Computed)
	}
}

func TestBalanceReportAccountNotFound(t *testing.T) {
	svc, _, _ := setupReport(t)

	if _, err := svc.BalanceReport(context.Background(), 404, time.Time{}); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.Reconcile(context.Background(), 404, "ARS"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound from reconcile, got %v", err)
	}
}
