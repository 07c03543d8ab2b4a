// Package dashboard aggregates system-wide figures for the back-office
// landing page: account counts, balance totals per currency, monthly
// movement series and recent activity.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const holderTypeUser = `App\Models\User`

// CurrencyTotal is the summed cached balance for one currency, minor units.
type CurrencyTotal struct {
	Currency string
	Total    int64
}

// Activity is one recent ledger movement joined with its account.
type Activity struct {
	AccountName string
	CVU         string
	Type        string
	Currency    string
	Amount      int64
	CreatedAt   time.Time
}

// Store supplies the aggregate queries the dashboard needs.
type Store interface {
	// AccountCounts returns the number of active and non-active accounts.
	AccountCounts(ctx context.Context) (active, inactive int64, err error)
	// BalanceTotals sums cached wallet balances per currency.
	BalanceTotals(ctx context.Context) ([]CurrencyTotal, error)
	// MonthlyInbound buckets confirmed inbound volume by calendar month
	// for one currency and year. Index 0 is January.
	MonthlyInbound(ctx context.Context, currency string, year int) ([12]int64, error)
	// Recent returns the latest confirmed movements, newest first.
	Recent(ctx context.Context, limit int) ([]Activity, error)
}

// PostgresStore runs the dashboard aggregates against PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a Postgres-backed dashboard store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// AccountCounts returns the number of active and non-active accounts.
func (s *PostgresStore) AccountCounts(ctx context.Context) (int64, int64, error) {
	var active, inactive int64
	err := s.db.QueryRow(ctx, `
        SELECT
            COUNT(*) FILTER (WHERE account_state = 'active'),
            COUNT(*) FILTER (WHERE account_state != 'active')
        FROM users`).Scan(&active, &inactive)
	if err != nil {
		return 0, 0, fmt.Errorf("count accounts: %w", err)
	}
	return active, inactive, nil
}

// BalanceTotals sums cached wallet balances per currency.
func (s *PostgresStore) BalanceTotals(ctx context.Context) ([]CurrencyTotal, error) {
	rows, err := s.db.Query(ctx, `
        SELECT w.slug, COALESCE(SUM(w.balance), 0)
        FROM wallets w
        WHERE w.holder_type = $1
        GROUP BY w.slug
        ORDER BY w.slug`, holderTypeUser)
	if err != nil {
		return nil, fmt.Errorf("sum balances: %w", err)
	}
	defer rows.Close()

	var totals []CurrencyTotal
	for rows.Next() {
		var t CurrencyTotal
		if err := rows.Scan(&t.Currency, &t.Total); err != nil {
			return nil, fmt.Errorf("scan balance total: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read balance totals: %w", err)
	}
	return totals, nil
}

// MonthlyInbound buckets confirmed inbound volume by calendar month.
func (s *PostgresStore) MonthlyInbound(ctx context.Context, currency string, year int) ([12]int64, error) {
	var months [12]int64
	rows, err := s.db.Query(ctx, `
        SELECT
            EXTRACT(MONTH FROM t.created_at)::int,
            COALESCE(SUM(ABS(t.amount)), 0)
        FROM transactions t
        JOIN wallets w ON w.id = t.wallet_id
        WHERE w.slug = $1
          AND w.holder_type = $2
          AND EXTRACT(YEAR FROM t.created_at) = $3
          AND t.confirmed = true
          AND (t.type = 'deposit' OR t.type LIKE 'transfer:received%')
        GROUP BY 1`, currency, holderTypeUser, year)
	if err != nil {
		return months, fmt.Errorf("monthly inbound: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month int
		var total int64
		if err := rows.Scan(&month, &total); err != nil {
			return months, fmt.Errorf("scan month: %w", err)
		}
		if month >= 1 && month <= 12 {
			months[month-1] = total
		}
	}
	if err := rows.Err(); err != nil {
		return months, fmt.Errorf("read months: %w", err)
	}
	return months, nil
}

// Recent returns the latest confirmed movements, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Activity, error) {
	rows, err := s.db.Query(ctx, `
        SELECT u.name, COALESCE(u.cvu, ''), t.type, w.slug, t.amount, t.created_at
        FROM transactions t
        JOIN wallets w ON w.id = t.wallet_id
        JOIN users u ON u.id = w.holder_id
        WHERE w.holder_type = $1 AND t.confirmed = true
        ORDER BY t.created_at DESC, t.id DESC
        LIMIT $2`, holderTypeUser, limit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	var activity []Activity
	for rows.Next() {
		var a Activity
		var createdAt time.Time
		if err := rows.Scan(&a.AccountName, &a.CVU, &a.Type, &a.Currency, &a.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.CreatedAt = createdAt.UTC()
		activity = append(activity, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}
	return activity, nil
}
