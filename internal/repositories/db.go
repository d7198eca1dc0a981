package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // goqu dialect
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // goqu dialect
	_ "github.com/jackc/pgx/v5/stdlib"                  // driver import
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3_ledger"
)

// sqliteFold is registered on every SQLite connection. SQLite's own lower() folds
// ASCII letters only.
const sqliteFold = "ledger_fold"

func init() {
	sql.Register(DriverSQLite, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(sqliteFold, foldCase, true)
		},
	})
}

// foldCase is the Go side of case-insensitive matching on SQLite.
func foldCase(s string) string {
	return strings.ToLower(s)
}

// OpenSQLite opens (or creates) the SQLite database file at path and applies the schema.
// Transactions take the write lock on BEGIN so concurrent borrowers queue instead of failing.
func OpenSQLite(ctx context.Context, path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_journal_mode=WAL&_txlock=immediate", path)
	db, err := sqlx.ConnectContext(ctx, DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", classify(err))
	}
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenPostgres connects to PostgreSQL and applies the schema.
func OpenPostgres(ctx context.Context, dsn string, maxOpenConns, maxIdleConns int) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, DriverPostgres, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", classify(err))
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates the ledger tables for the connection's driver. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration: %w", classify(err))
	}
	defer tx.Rollback()

	for _, stmt := range schemaFor(db.DriverName()) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", classify(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", classify(err))
	}
	logger.Log.Infow("schema ready", "driver", db.DriverName())
	return nil
}

func schemaFor(driverName string) []string {
	if driverName == DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		year TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		available BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE INDEX IF NOT EXISTS books_title_lower_idx ON books (lower(title));`,
	`CREATE TABLE IF NOT EXISTS active_loans (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		book_id UUID NOT NULL UNIQUE REFERENCES books(id),
		book_title TEXT NOT NULL,
		borrowed_on TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS active_loans_username_lower_idx ON active_loans (lower(username));`,
	`CREATE TABLE IF NOT EXISTS history (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL,
		book_id UUID NOT NULL,
		book_title TEXT NOT NULL,
		action TEXT NOT NULL,
		borrowed_on TIMESTAMPTZ,
		returned_on TIMESTAMPTZ
	);`,
	`CREATE TABLE IF NOT EXISTS accounts (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		year TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		available BOOLEAN NOT NULL DEFAULT 1
	);`,
	`CREATE INDEX IF NOT EXISTS books_title_fold_idx ON books (ledger_fold(title));`,
	`CREATE TABLE IF NOT EXISTS active_loans (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		book_id TEXT NOT NULL UNIQUE REFERENCES books(id),
		book_title TEXT NOT NULL,
		borrowed_on DATETIME NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS active_loans_username_fold_idx ON active_loans (ledger_fold(username));`,
	`CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		book_id TEXT NOT NULL,
		book_title TEXT NOT NULL,
		action TEXT NOT NULL,
		borrowed_on DATETIME,
		returned_on DATETIME
	);`,
	`CREATE TABLE IF NOT EXISTS accounts (
		username TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`,
}

// sqlRepository holds what every table repository needs: the pool, the optional
// transaction lookup and the dialect-specific pieces of SQL.
type sqlRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
	dialect  goqu.DialectWrapper
	// lockClause makes concurrent claims skip rows another transaction already holds.
	lockClause string
	// fold is the SQL function used for case-insensitive comparison.
	fold string
}

func newSQLRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) sqlRepository {
	r := sqlRepository{db: db, txGetter: txGetter}
	if db.DriverName() == DriverSQLite {
		r.dialect = goqu.Dialect("sqlite3")
		r.fold = sqliteFold
	} else {
		r.dialect = goqu.Dialect("postgres")
		r.fold = "lower"
		r.lockClause = " FOR UPDATE SKIP LOCKED"
	}
	return r
}

// executor returns the transaction bound to ctx, or the pool when there is none.
func (r sqlRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// foldEq compares column and value case-insensitively.
func (r sqlRepository) foldEq(column string, value string) goqu.Expression {
	return goqu.Func(r.fold, goqu.C(column)).Eq(goqu.Func(r.fold, value))
}

// logQuery logs a statement in a single line.
func logQuery(query string, args []any, result any, err error) {
	logger.Log.Debugw("sql",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
