// Package export writes deterministic CSV snapshots of the account
// roster with per-currency balances. Output is byte-stable for a given
// dataset so consecutive exports can be diffed.
package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/blexpay/backoffice/internal/account"
	"github.com/blexpay/backoffice/internal/money"
	"github.com/blexpay/backoffice/internal/wallet"
)

// Balance columns in output order. USD wallets exist but are not part of
// the snapshot layout the finance team imports.
var balanceCurrencies = []string{wallet.CurrencyARS, wallet.CurrencyUSDC, wallet.CurrencyBRL}

// Writer renders account snapshots as CSV.
type Writer struct {
	accounts  account.Repository
	wallets   wallet.Repository
	delimiter rune
}

// NewWriter builds a CSV snapshot writer. A zero delimiter defaults to
// comma; semicolon is the other supported value for spreadsheet locales
// that treat comma as the decimal separator.
func NewWriter(accounts account.Repository, wallets wallet.Repository, delimiter rune) (*Writer, error) {
	if delimiter == 0 {
		delimiter = ','
	}
	if delimiter != ',' && delimiter != ';' {
		return nil, fmt.Errorf("unsupported delimiter %q", delimiter)
	}
	return &Writer{accounts: accounts, wallets: wallets, delimiter: delimiter}, nil
}

// WriteActive writes the active-account snapshot, ordered by name.
func (w *Writer) WriteActive(ctx context.Context, out io.Writer) error {
	accounts, err := w.accounts.All(ctx, true)
	if err != nil {
		return err
	}

	header := []string{"user_id", "name", "email", "cvu", "estado", "ars_balance", "usdc_balance", "brl_balance", "created_at", "closed_at"}
	if err := w.writeRecord(out, header); err != nil {
		return err
	}

	for _, a := range accounts {
		balances, err := w.balancesFor(ctx, a.ID)
		if err != nil {
			return err
		}
		record := []string{
			strconv.FormatInt(a.ID, 10),
			quote(a.Name),
			quote(a.Email),
			quote(a.CVU),
			quote(estado(a)),
			balances[0], balances[1], balances[2],
			formatTime(a.CreatedAt),
			formatTimePtr(a.ClosedAt),
		}
		if err := w.writeRecord(out, record); err != nil {
			return err
		}
	}
	return nil
}

// WriteAll writes every account, newest first.
func (w *Writer) WriteAll(ctx context.Context, out io.Writer) error {
	accounts, err := w.accounts.All(ctx, false)
	if err != nil {
		return err
	}

	header := []string{"user_id", "name", "email", "account_state", "closed_at", "estado", "ars_balance", "usdc_balance", "brl_balance", "created_at"}
	if err := w.writeRecord(out, header); err != nil {
		return err
	}

	for _, a := range accounts {
		balances, err := w.balancesFor(ctx, a.ID)
		if err != nil {
			return err
		}
		record := []string{
			strconv.FormatInt(a.ID, 10),
			quote(a.Name),
			quote(a.Email),
			quote(a.State),
			formatTimePtr(a.ClosedAt),
			quote(estado(a)),
			balances[0], balances[1], balances[2],
			formatTime(a.CreatedAt),
		}
		if err := w.writeRecord(out, record); err != nil {
			return err
		}
	}
	return nil
}

// balancesFor returns formatted balances in balanceCurrencies order,
// "0.00" for currencies the account holds no wallet in.
func (w *Writer) balancesFor(ctx context.Context, accountID int64) ([]string, error) {
	wallets, err := w.wallets.ByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]int64, len(wallets))
	for _, wl := range wallets {
		bySlug[wl.Currency] = wl.Balance
	}

	out := make([]string, len(balanceCurrencies))
	for i, currency := range balanceCurrencies {
		out[i] = money.Format(bySlug[currency])
	}
	return out, nil
}

func (w *Writer) writeRecord(out io.Writer, fields []string) error {
	_, err := io.WriteString(out, strings.Join(fields, string(w.delimiter))+"\n")
	return err
}

// quote wraps a text field in double quotes, doubling embedded quotes.
// Money and timestamp fields stay unquoted so spreadsheets parse them as
// numbers and dates.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func estado(a account.Account) string {
	if a.Active() {
		return "Activo"
	}
	return "Cerrado"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}
