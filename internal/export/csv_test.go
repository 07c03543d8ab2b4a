package export

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/blexpay/backoffice/internal/account"
	"github.com/blexpay/backoffice/internal/wallet"
)

func seedRepos(t *testing.T) (*account.MemoryRepository, *wallet.MemoryRepository) {
	t.Helper()
	accounts := account.NewMemoryRepository()
	wallets := wallet.NewMemoryRepository()

	created := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	closed := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	accounts.Seed(account.Account{
		ID: 1, Name: "Ana Alvarez", Email: "ana@example.com", CVU: "0000003100010000000001",
		State: account.StateActive, CreatedAt: created,
	})
	accounts.Seed(account.Account{
		ID: 2, Name: `Bruno "Beto" Diaz`, Email: "bruno@example.com",
		State: account.StateActive, CreatedAt: created.Add(24 * time.Hour),
	})
	accounts.Seed(account.Account{
		ID: 3, Name: "Carla Gomez", Email: "carla@example.com",
		State: account.StateClosed, CreatedAt: created.Add(48 * time.Hour), ClosedAt: &closed,
	})

	wallets.Seed(wallet.Wallet{ID: 10, AccountID: 1, Currency: wallet.CurrencyARS, Balance: 150000})
	wallets.Seed(wallet.Wallet{ID: 11, AccountID: 1, Currency: wallet.CurrencyUSDC, Balance: 2550})
	wallets.Seed(wallet.Wallet{ID: 12, AccountID: 2, Currency: wallet.CurrencyBRL, Balance: -300})

	return accounts, wallets
}

func TestWriteActiveSnapshot(t *testing.T) {
	accounts, wallets := seedRepos(t)
	writer, err := NewWriter(accounts, wallets, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	var buf bytes.Buffer
	if err := writer.WriteActive(context.Background(), &buf); err != nil {
		t.Fatalf("WriteActive: %v", err)
	}

	want := strings.Join([]string{
		"user_id,name,email,cvu,estado,ars_balance,usdc_balance,brl_balance,created_at,closed_at",
		`1,"Ana Alvarez","ana@example.com","0000003100010000000001","Activo",1500.00,25.50,0.00,2024-03-10T12:00:00Z,`,
		`2,"Bruno ""Beto"" Diaz","bruno@example.com","","Activo",0.00,0.00,-3.00,2024-03-11T12:00:00Z,`,
		"",
	}, "\n")

	if got := buf.String(); got != want {
		t.Fatalf("snapshot mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteActiveIsByteStable(t *testing.T) {
	accounts, wallets := seedRepos(t)
	writer, err := NewWriter(accounts, wallets, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	var first, second bytes.Buffer
	if err := writer.WriteActive(context.Background(), &first); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := writer.WriteActive(context.Background(), &second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatal("consecutive exports differ")
	}
}

func TestWriteAllSnapshot(t *testing.T) {
	accounts, wallets := seedRepos(t)
	writer, err := NewWriter(accounts, wallets, 0)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	var buf bytes.Buffer
	if err := writer.WriteAll(context.Background(), &buf); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "user_id,name,email,account_state,closed_at,estado,ars_balance,usdc_balance,brl_balance,created_at" {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	// Newest account first; the closed one carries its timestamp and state.
	if !strings.HasPrefix(lines[1], `3,"Carla Gomez"`) {
		t.Fatalf("expected newest account first, got %s", lines[1])
	}
	if !strings.Contains(lines[1], `"closed"`) || !strings.Contains(lines[1], "2024-06-01T09:30:00Z") {
		t.Fatalf("closed account row missing state or timestamp: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"Cerrado"`) {
		t.Fatalf("closed account row missing estado: %s", lines[1])
	}
}

func TestSemicolonDelimiter(t *testing.T) {
	accounts, wallets := seedRepos(t)
	writer, err := NewWriter(accounts, wallets, ';')
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	var buf bytes.Buffer
	if err := writer.WriteActive(context.Background(), &buf); err != nil {
		t.Fatalf("WriteActive: %v", err)
	}

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.Contains(header, "user_id;name;email") {
		t.Fatalf("expected semicolon-delimited header, got %s", header)
	}
}

func TestUnsupportedDelimiter(t *testing.T) {
	accounts, wallets := seedRepos(t)
	if _, err := NewWriter(accounts, wallets, '\t'); err == nil {
		t.Fatal("expected error for unsupported delimiter")
	}
}
