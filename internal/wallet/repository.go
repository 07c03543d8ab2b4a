package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const holderTypeUser = `App\Models\User`

// Repository reads cached wallet balances.
type Repository interface {
	// Get fetches the wallet for an (account, currency) pair.
	Get(ctx context.Context, accountID int64, currency string) (Wallet, error)
	// ByAccount lists all wallets held by an account, ordered by currency.
	ByAccount(ctx context.Context, accountID int64) ([]Wallet, error)
}

// PostgresRepository reads wallets from PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches the wallet for an (account, currency) pair.
func (r *PostgresRepository) Get(ctx context.Context, accountID int64, currency string) (Wallet, error) {
	row := r.db.QueryRow(ctx, `SELECT id, holder_id, slug, balance, updated_at
        FROM wallets
        WHERE holder_id = $1 AND holder_type = $2 AND slug = $3
        LIMIT 1`, accountID, holderTypeUser, currency)

	w, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrNotFound
		}
		return Wallet{}, fmt.Errorf("get wallet: %w", err)
	}
	return w, nil
}

// ByAccount lists all wallets held by an account.
func (r *PostgresRepository) ByAccount(ctx context.Context, accountID int64) ([]Wallet, error) {
	rows, err := r.db.Query(ctx, `SELECT id, holder_id, slug, balance, updated_at
        FROM wallets
        WHERE holder_id = $1 AND holder_type = $2
        ORDER BY slug`, accountID, holderTypeUser)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read wallets: %w", err)
	}
	return wallets, nil
}

func scanWallet(row pgx.Row) (Wallet, error) {
	var w Wallet
	var updatedAt time.Time
	if err := row.Scan(&w.ID, &w.AccountID, &w.Currency, &w.Balance, &updatedAt); err != nil {
		return Wallet{}, err
	}
	w.UpdatedAt = updatedAt.UTC()
	return w, nil
}
