package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Wallets are polymorphic in the platform schema; the back office only
// reads user-held wallets.
const holderTypeUser = `App\Models\User`

// PostgresStore reads ledger entries from PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed entry store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const entryColumns = `
        t.id,
        t.wallet_id,
        w.holder_id,
        w.slug,
        t.type,
        t.amount,
        t.confirmed,
        COALESCE(t.meta->>'description', ''),
        t.created_at`

// Page fetches a bounded slice of an account's confirmed history. The
// cursor bound is applied as a row-value comparison so the composite
// (created_at, id) key is treated as a single ordering key.
func (s *PostgresStore) Page(ctx context.Context, q PageQuery) ([]Entry, error) {
	conditions := []string{
		"w.holder_id = $1",
		fmt.Sprintf("w.holder_type = '%s'", holderTypeUser),
		"t.confirmed = true",
	}
	params := []any{q.AccountID}

	if q.Currency != "" {
		params = append(params, q.Currency)
		conditions = append(conditions, fmt.Sprintf("w.slug = $%d", len(params)))
	}
	if q.Type != "" {
		params = append(params, q.Type)
		conditions = append(conditions, fmt.Sprintf("t.type = $%d", len(params)))
	}

	order := "DESC"
	if q.Before != nil {
		params = append(params, q.Before.CreatedAt, q.Before.ID)
		conditions = append(conditions, fmt.Sprintf("(t.created_at, t.id) < ($%d, $%d)", len(params)-1, len(params)))
	} else if q.After != nil {
		params = append(params, q.After.CreatedAt, q.After.ID)
		conditions = append(conditions, fmt.Sprintf("(t.created_at, t.id) > ($%d, $%d)", len(params)-1, len(params)))
		order = "ASC"
	}

	params = append(params, q.Limit)

	query := fmt.Sprintf(`
        SELECT %s
        FROM transactions t
        JOIN wallets w ON w.id = t.wallet_id
        WHERE %s
        ORDER BY t.created_at %s, t.id %s
        LIMIT $%d`,
		entryColumns, strings.Join(conditions, " AND "), order, order, len(params))

	return s.queryEntries(ctx, query, params...)
}

// SumConfirmed totals confirmed entry amounts for a wallet up to asOf.
func (s *PostgresStore) SumConfirmed(ctx context.Context, walletID int64, asOf time.Time) (int64, error) {
	query := `
        SELECT COALESCE(SUM(t.amount), 0)
        FROM transactions t
        WHERE t.wallet_id = $1 AND t.confirmed = true`
	params := []any{walletID}

	if !asOf.IsZero() {
		query += " AND t.created_at <= $2"
		params = append(params, asOf.UTC())
	}

	var sum int64
	if err := s.db.QueryRow(ctx, query, params...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum confirmed entries: %w", err)
	}
	return sum, nil
}

// ConfirmedSince returns confirmed entries created strictly after since,
// oldest first. Used by the polling feed.
func (s *PostgresStore) ConfirmedSince(ctx context.Context, accountID int64, since time.Time, currency string) ([]Entry, error) {
	conditions := []string{
		"w.holder_id = $1",
		fmt.Sprintf("w.holder_type = '%s'", holderTypeUser),
		"t.confirmed = true",
		"t.created_at > $2",
	}
	params := []any{accountID, since.UTC()}

	if currency != "" {
		params = append(params, currency)
		conditions = append(conditions, fmt.Sprintf("w.slug = $%d", len(params)))
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM transactions t
        JOIN wallets w ON w.id = t.wallet_id
        WHERE %s
        ORDER BY t.created_at ASC, t.id ASC`,
		entryColumns, strings.Join(conditions, " AND "))

	return s.queryEntries(ctx, query, params...)
}

func (s *PostgresStore) queryEntries(ctx context.Context, query string, params ...any) ([]Entry, error) {
	rows, err := s.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt time.Time
		if err := rows.Scan(&e.ID, &e.WalletID, &e.AccountID, &e.Currency, &e.Type,
			&e.Amount, &e.Confirmed, &e.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CreatedAt = createdAt.UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return entries, nil
}
