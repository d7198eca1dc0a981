package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type loanDocument struct {
	ID         string    `bson:"_id"`
	Username   string    `bson:"username"`
	BookID     string    `bson:"book_id"`
	BookTitle  string    `bson:"book_title"`
	BorrowedOn time.Time `bson:"borrowed_on"`
}

func (d loanDocument) model() (models.Loan, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Loan{}, fmt.Errorf("loan %q: %w", d.ID, err)
	}
	bookID, err := uuid.Parse(d.BookID)
	if err != nil {
		return models.Loan{}, fmt.Errorf("loan %q book: %w", d.ID, err)
	}
	return models.Loan{
		ID:         id,
		Username:   d.Username,
		BookID:     bookID,
		BookTitle:  d.BookTitle,
		BorrowedOn: d.BorrowedOn.UTC(),
	}, nil
}

type LoanRepository struct {
	coll *mongo.Collection
}

func NewLoanRepository(coll *mongo.Collection) *LoanRepository {
	return &LoanRepository{coll: coll}
}

func (r *LoanRepository) Create(ctx context.Context, loan models.Loan) error {
	doc := loanDocument{
		ID:         loan.ID.String(),
		Username:   loan.Username,
		BookID:     loan.BookID.String(),
		BookTitle:  loan.BookTitle,
		BorrowedOn: loan.BorrowedOn,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	logOp(r.coll, "insert", doc.ID, nil, err)
	return classify(err)
}

// ClaimByUsernameAndTitle removes the user's oldest loan of the title and returns
// it, or nil, nil when there is none.
func (r *LoanRepository) ClaimByUsernameAndTitle(ctx context.Context, username, title string) (*models.Loan, error) {
	filter := bson.D{
		{Key: "username", Value: exactMatch(username)},
		{Key: "book_title", Value: exactMatch(title)},
	}
	opts := options.FindOneAndDelete().SetSort(bson.D{{Key: "_id", Value: 1}})

	var doc loanDocument
	err := r.coll.FindOneAndDelete(ctx, filter, opts).Decode(&doc)
	logOp(r.coll, "claim", filter, doc.ID, err)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}

	loan, err := doc.model()
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *LoanRepository) ListByUsername(ctx context.Context, username string) ([]models.Loan, error) {
	filter := bson.D{{Key: "username", Value: exactMatch(username)}}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	logOp(r.coll, "find", filter, nil, err)
	if err != nil {
		return nil, classify(err)
	}

	var docs []loanDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classify(err)
	}

	loans := make([]models.Loan, 0, len(docs))
	for _, doc := range docs {
		loan, err := doc.model()
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, nil
}
