package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

// LoanRepository stores active loans.
type LoanRepository struct {
	sqlRepository
}

// NewLoanRepository creates a LoanRepository. txGetter may be nil.
func NewLoanRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *LoanRepository {
	return &LoanRepository{sqlRepository: newSQLRepository(db, txGetter)}
}

// Create inserts an active loan. A second loan for the same book violates the
// unique book_id index and fails with models.ErrAlreadyExists.
func (r *LoanRepository) Create(ctx context.Context, loan models.Loan) error {
	query := r.db.Rebind(`
		INSERT INTO active_loans (id, username, book_id, book_title, borrowed_on)
		VALUES (?, ?, ?, ?, ?)
	`)
	args := []any{loan.ID, loan.Username, loan.BookID, loan.BookTitle, loan.BorrowedOn}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return classify(err)
}

// ClaimByUsernameAndTitle deletes the oldest loan whose username and book title both
// match case-insensitively, and returns it. Returns nil, nil when nothing matches.
// Only one of several concurrent claims of the same loan succeeds.
func (r *LoanRepository) ClaimByUsernameAndTitle(ctx context.Context, username, title string) (*models.Loan, error) {
	selectQuery := r.db.Rebind(fmt.Sprintf(`
		SELECT id, username, book_id, book_title, borrowed_on
		FROM active_loans
		WHERE %[1]s(username) = %[1]s(?) AND %[1]s(book_title) = %[1]s(?)
		ORDER BY id
		LIMIT 1%[2]s
	`, r.fold, r.lockClause))
	selectArgs := []any{username, title}

	executor := r.executor(ctx)

	var loan models.Loan
	err := sqlx.GetContext(ctx, executor, &loan, selectQuery, selectArgs...)
	logQuery(selectQuery, selectArgs, loan.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}

	deleteQuery := r.db.Rebind(`DELETE FROM active_loans WHERE id = ?`)
	deleteArgs := []any{loan.ID}

	res, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(deleteQuery, deleteArgs, rowsAffected, err)

	if err != nil {
		return nil, classify(err)
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return &loan, nil
}

// ListByUsername returns the user's active loans, oldest first.
func (r *LoanRepository) ListByUsername(ctx context.Context, username string) ([]models.Loan, error) {
	query := r.db.Rebind(fmt.Sprintf(`
		SELECT id, username, book_id, book_title, borrowed_on
		FROM active_loans
		WHERE %[1]s(username) = %[1]s(?)
		ORDER BY id
	`, r.fold))
	args := []any{username}

	var loans []models.Loan
	err := sqlx.SelectContext(ctx, r.executor(ctx), &loans, query, args...)
	logQuery(query, args, len(loans), err)

	if err != nil {
		return nil, classify(err)
	}
	return loans, nil
}
