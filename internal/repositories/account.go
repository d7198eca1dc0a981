package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

// AccountRepository stores login accounts.
type AccountRepository struct {
	sqlRepository
}

// NewAccountRepository creates an AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{sqlRepository: newSQLRepository(db, nil)}
}

// Create inserts an account. A taken username fails with models.ErrAlreadyExists.
func (r *AccountRepository) Create(ctx context.Context, account models.Account) error {
	query := r.db.Rebind(`
		INSERT INTO accounts (username, password_hash, role, created_at)
		VALUES (?, ?, ?, ?)
	`)
	// the hash stays out of the log
	args := []any{account.Username, account.PasswordHash, string(account.Role), account.CreatedAt}

	_, err := r.db.ExecContext(ctx, query, args...)
	logQuery(query, []any{account.Username, string(account.Role)}, nil, err)

	return classify(err)
}

// GetByUsername returns the account with the exact username, or nil when absent.
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := r.db.Rebind(`
		SELECT username, password_hash, role, created_at
		FROM accounts
		WHERE username = ?
	`)
	args := []any{username}

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, args...)
	logQuery(query, args, account.Username, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &account, nil
}
