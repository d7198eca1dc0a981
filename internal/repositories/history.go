package repositories

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

var historyColumns = []any{"id", "username", "book_id", "book_title", "action", "borrowed_on", "returned_on"}

// HistoryRepository stores the append-only borrow/return log.
type HistoryRepository struct {
	sqlRepository
}

// NewHistoryRepository creates a HistoryRepository. txGetter may be nil.
func NewHistoryRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *HistoryRepository {
	return &HistoryRepository{sqlRepository: newSQLRepository(db, txGetter)}
}

// Append inserts a history entry. Entries are never updated or deleted.
func (r *HistoryRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	query := r.db.Rebind(`
		INSERT INTO history (id, username, book_id, book_title, action, borrowed_on, returned_on)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	args := []any{entry.ID, entry.Username, entry.BookID, entry.BookTitle, string(entry.Action), entry.BorrowedOn, entry.ReturnedOn}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(query, args, rowsAffected, err)

	return classify(err)
}

// List streams history entries in insertion order. Every iteration runs a fresh query.
func (r *HistoryRepository) List(ctx context.Context, filter models.HistoryFilter) iter.Seq2[models.HistoryEntry, error] {
	return func(yield func(models.HistoryEntry, error) bool) {
		ds := r.dialect.From("history").
			Select(historyColumns...).
			Order(goqu.I("id").Asc())
		if u := strings.TrimSpace(filter.Username); u != "" {
			ds = ds.Where(r.foldEq("username", u))
		}

		query, args, err := ds.Prepared(true).ToSQL()
		if err != nil {
			yield(models.HistoryEntry{}, fmt.Errorf("build history query: %w", err))
			return
		}

		rows, err := r.executor(ctx).QueryxContext(ctx, query, args...)
		logQuery(query, args, nil, err)
		if err != nil {
			yield(models.HistoryEntry{}, classify(err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var entry models.HistoryEntry
			if err := rows.StructScan(&entry); err != nil {
				yield(models.HistoryEntry{}, err)
				return
			}
			if !yield(entry, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(models.HistoryEntry{}, classify(err))
		}
	}
}
