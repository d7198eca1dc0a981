// Package mongodb stores the ledger in MongoDB. Multi-document changes need a
// replica set because they run inside session transactions.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	BooksCollection    = "Books"
	LoansCollection    = "ActiveLoans"
	HistoryCollection  = "History"
	AccountsCollection = "Accounts"
)

// Store owns the client and hands out repositories bound to one database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri and verifies the connection.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", classify(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w: %w", models.ErrStoreUnavailable, err)
	}
	logger.Log.Infow("connected to mongo", "db", dbName)
	return &Store{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the unique index that backs the one-loan-per-book rule.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(LoansCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "book_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create loans index: %w", classify(err))
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) Books() *BookRepository {
	return NewBookRepository(s.db.Collection(BooksCollection))
}

func (s *Store) Loans() *LoanRepository {
	return NewLoanRepository(s.db.Collection(LoansCollection))
}

func (s *Store) History() *HistoryRepository {
	return NewHistoryRepository(s.db.Collection(HistoryCollection))
}

func (s *Store) Accounts() *AccountRepository {
	return NewAccountRepository(s.db.Collection(AccountsCollection))
}

func (s *Store) TxManager() *TxManager {
	return NewTxManager(s.client)
}

// exactMatch matches the whole string ignoring case. The value is escaped so
// regex metacharacters in titles match literally.
func exactMatch(s string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(s) + "$", Options: "i"}
}

func containsMatch(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), errors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", models.ErrAlreadyExists, err)
	default:
		return err
	}
}

func logOp(coll *mongo.Collection, op string, filter any, result any, err error) {
	logger.Log.Debugw("mongo",
		"collection", coll.Name(),
		"op", op,
		"filter", filter,
		"result", result,
		"error", err,
	)
}
