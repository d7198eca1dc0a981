// Package app wires a storage backend into the ledger and account services.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-library-ledger/internal/repositories"
	"github.com/sbilibin2017/gw-library-ledger/internal/repositories/mongodb"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
)

// Supported STORE_DRIVER values.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// StoreConfig selects and configures the backend.
type StoreConfig struct {
	Driver string

	PostgresDSN  string
	MaxOpenConns int
	MaxIdleConns int

	SQLitePath string

	MongoURI string
	MongoDB  string
}

// Store holds the repositories of one backend and the connection behind them.
type Store struct {
	Books    services.BookRepository
	Loans    services.LoanRepository
	History  services.HistoryRepository
	Accounts services.AccountRepository
	Tx       services.Transactor

	close func(ctx context.Context) error
}

// OpenStore connects to the configured backend and prepares its schema.
func OpenStore(ctx context.Context, cfg StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
		var (
			db  *sqlx.DB
			err error
		)
		if cfg.Driver == DriverPostgres {
			db, err = repositories.OpenPostgres(ctx, cfg.PostgresDSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		} else {
			db, err = repositories.OpenSQLite(ctx, cfg.SQLitePath)
		}
		if err != nil {
			return nil, err
		}
		return &Store{
			Books:    repositories.NewBookRepository(db, repositories.TxFromContext),
			Loans:    repositories.NewLoanRepository(db, repositories.TxFromContext),
			History:  repositories.NewHistoryRepository(db, repositories.TxFromContext),
			Accounts: repositories.NewAccountRepository(db),
			Tx:       repositories.NewTxManager(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil

	case DriverMongo:
		ms, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		if err := ms.EnsureIndexes(ctx); err != nil {
			ms.Close(ctx)
			return nil, err
		}
		return &Store{
			Books:    ms.Books(),
			Loans:    ms.Loans(),
			History:  ms.History(),
			Accounts: ms.Accounts(),
			Tx:       ms.TxManager(),
			close:    ms.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// Ledger builds the ledger service on top of the store. events may be nil.
func (s *Store) Ledger(events services.EventPublisher) *services.LedgerService {
	return services.NewLedgerService(s.Books, s.Loans, s.History, s.Tx, events)
}

// Close releases the connection.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}
