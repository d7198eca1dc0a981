package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// accounts are keyed by username, so the _id index enforces uniqueness
type accountDocument struct {
	Username     string    `bson:"_id"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(coll *mongo.Collection) *AccountRepository {
	return &AccountRepository{coll: coll}
}

func (r *AccountRepository) Create(ctx context.Context, account models.Account) error {
	_, err := r.coll.InsertOne(ctx, accountDocument{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
		CreatedAt:    account.CreatedAt,
	})
	logOp(r.coll, "insert", account.Username, nil, err)
	return classify(err)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	filter := bson.D{{Key: "_id", Value: username}}

	var doc accountDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	logOp(r.coll, "find", filter, doc.Username, err)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &models.Account{
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		Role:         models.Role(doc.Role),
		CreatedAt:    doc.CreatedAt.UTC(),
	}, nil
}
