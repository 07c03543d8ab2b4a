package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListFilter narrows and pages the account roster.
type ListFilter struct {
	Search string // matches name, email, CUIT or CVU
	Status string // optional account_state filter
	Page   int    // 1-based
	Limit  int
}

// Repository reads accounts.
type Repository interface {
	// List returns one page of accounts plus the total matching count.
	List(ctx context.Context, filter ListFilter) ([]Account, int, error)
	// Get fetches a single account by identifier.
	Get(ctx context.Context, id int64) (Account, error)
	// All returns every account, optionally restricted to active ones,
	// in a deterministic order suitable for exports.
	All(ctx context.Context, activeOnly bool) ([]Account, error)
}

// PostgresRepository reads accounts from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const accountColumns = `u.id, u.name, u.email, COALESCE(u.cuit, ''), COALESCE(u.cvu, ''), u.account_state, u.created_at, u.closed_at`

// List returns one page of accounts plus the total matching count.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Account, int, error) {
	var conditions []string
	var params []any

	if filter.Search != "" {
		params = append(params, "%"+filter.Search+"%")
		n := len(params)
		conditions = append(conditions, fmt.Sprintf(
			"(u.name ILIKE $%d OR u.email ILIKE $%d OR u.cuit ILIKE $%d OR u.cvu ILIKE $%d)", n, n, n, n))
	}
	if filter.Status != "" {
		params = append(params, filter.Status)
		conditions = append(conditions, fmt.Sprintf("u.account_state = $%d", len(params)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users u %s", where)
	if err := r.db.QueryRow(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	params = append(params, limit, (page-1)*limit)

	query := fmt.Sprintf(`SELECT %s FROM users u %s ORDER BY u.id DESC LIMIT $%d OFFSET $%d`,
		accountColumns, where, len(params)-1, len(params))

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// Get fetches a single account by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id int64) (Account, error) {
	row := r.db.QueryRow(ctx, fmt.Sprintf(`SELECT %s FROM users u WHERE u.id = $1`, accountColumns), id)
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// All returns every account in export order: active-only snapshots sort
// by name, full snapshots newest first. The id tiebreak keeps output
// byte-stable across runs.
func (r *PostgresRepository) All(ctx context.Context, activeOnly bool) ([]Account, error) {
	where := ""
	order := "ORDER BY u.created_at DESC, u.id DESC"
	if activeOnly {
		where = "WHERE u.closed_at IS NULL"
		order = "ORDER BY u.name, u.id"
	}

	query := fmt.Sprintf(`SELECT %s FROM users u %s %s`, accountColumns, where, order)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

func collectAccounts(rows pgx.Rows) ([]Account, error) {
	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read accounts: %w", err)
	}
	return accounts, nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	var createdAt time.Time
	var closedAt *time.Time
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.CUIT, &a.CVU, &a.State, &createdAt, &closedAt); err != nil {
		return Account{}, err
	}
	a.CreatedAt = createdAt.UTC()
	if closedAt != nil {
		utc := closedAt.UTC()
		a.ClosedAt = &utc
	}
	return a, nil
}
