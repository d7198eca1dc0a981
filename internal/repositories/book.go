package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

var bookColumns = []any{"id", "title", "author", "year", "genre", "available"}

// BookRepository stores catalog books.
type BookRepository struct {
	sqlRepository
}

// NewBookRepository creates a BookRepository. txGetter may be nil.
func NewBookRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *BookRepository {
	return &BookRepository{sqlRepository: newSQLRepository(db, txGetter)}
}

// Create inserts a new book.
func (r *BookRepository) Create(ctx context.Context, book models.Book) error {
	query := r.db.Rebind(`
		INSERT INTO books (id, title, author, year, genre, available)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	args := []any{book.ID, book.Title, book.Author, book.Year, book.Genre, book.Available}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return classify(err)
}

// ClaimAvailableByTitle atomically marks one available book with a case-insensitive
// exact title match as unavailable and returns it. Among several matching copies the
// one with the lowest id wins. Returns nil, nil when no copy is available.
func (r *BookRepository) ClaimAvailableByTitle(ctx context.Context, title string) (*models.Book, error) {
	query := r.db.Rebind(fmt.Sprintf(`
		UPDATE books SET available = FALSE
		WHERE id = (
			SELECT id FROM books
			WHERE %[1]s(title) = %[1]s(?) AND available = TRUE
			ORDER BY id
			LIMIT 1%[2]s
		) AND available = TRUE
		RETURNING id, title, author, year, genre, available
	`, r.fold, r.lockClause))
	args := []any{title}

	var book models.Book
	err := sqlx.GetContext(ctx, r.executor(ctx), &book, query, args...)
	logQuery(query, args, book.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &book, nil
}

// Release marks a borrowed book as available again. It reports false when the book
// does not exist or is already available.
func (r *BookRepository) Release(ctx context.Context, bookID uuid.UUID) (bool, error) {
	query := r.db.Rebind(`
		UPDATE books SET available = TRUE
		WHERE id = ? AND available = FALSE
	`)
	args := []any{bookID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return false, classify(err)
	}
	return rowsAffected == 1, nil
}

// List streams books ordered by id. Every iteration runs a fresh query.
func (r *BookRepository) List(ctx context.Context, filter models.BookFilter) iter.Seq2[models.Book, error] {
	return func(yield func(models.Book, error) bool) {
		ds := r.dialect.From("books").
			Select(bookColumns...).
			Order(goqu.I("id").Asc())
		if filter.AvailableOnly {
			ds = ds.Where(goqu.C("available").Eq(true))
		}
		if q := strings.TrimSpace(filter.TitleContains); q != "" {
			ds = ds.Where(goqu.L(
				fmt.Sprintf(`%[1]s(title) LIKE '%%' || %[1]s(?) || '%%' ESCAPE '\'`, r.fold),
				escapeLike(q),
			))
		}

		query, args, err := ds.Prepared(true).ToSQL()
		if err != nil {
			yield(models.Book{}, fmt.Errorf("build books query: %w", err))
			return
		}

		rows, err := r.executor(ctx).QueryxContext(ctx, query, args...)
		logQuery(query, args, nil, err)
		if err != nil {
			yield(models.Book{}, classify(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var book models.Book
			if err := rows.StructScan(&book); err != nil {
				yield(models.Book{}, err)
				return
			}
			if !yield(book, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.Book{}, classify(err))
		}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern escaped with '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
