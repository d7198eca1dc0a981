package mongodb

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type historyDocument struct {
	ID         any        `bson:"_id"`
	Username   string     `bson:"username"`
	BookID     any        `bson:"book_id"`
	BookTitle  string     `bson:"book_title"`
	Action     string     `bson:"action"`
	BorrowedOn *time.Time `bson:"borrowed_on,omitempty"`
	ReturnedOn *time.Time `bson:"returned_on,omitempty"`
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// model never fails: entries carried over from the desk application may hold keys
// of any shape, and unreadable ones become uuid.Nil.
func (d historyDocument) model() (models.HistoryEntry, error) {
	id, _ := parseKey(d.ID)
	bookID, _ := parseKey(d.BookID)
	return models.HistoryEntry{
		ID:         id,
		Username:   d.Username,
		BookID:     bookID,
		BookTitle:  d.BookTitle,
		Action:     models.Action(d.Action),
		BorrowedOn: utc(d.BorrowedOn),
		ReturnedOn: utc(d.ReturnedOn),
	}, nil
}

type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(coll *mongo.Collection) *HistoryRepository {
	return &HistoryRepository{coll: coll}
}

func (r *HistoryRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	doc := historyDocument{
		ID:         docKey(entry.ID),
		Username:   entry.Username,
		BookID:     docKey(entry.BookID),
		BookTitle:  entry.BookTitle,
		Action:     string(entry.Action),
		BorrowedOn: entry.BorrowedOn,
		ReturnedOn: entry.ReturnedOn,
	}
	_, err := r.coll.InsertOne(ctx, doc)
	logOp(r.coll, "insert", doc.ID, nil, err)
	return classify(err)
}

// List streams entries in insertion order. Every iteration opens a new cursor.
func (r *HistoryRepository) List(ctx context.Context, filter models.HistoryFilter) iter.Seq2[models.HistoryEntry, error] {
	return func(yield func(models.HistoryEntry, error) bool) {
		query := bson.D{}
		if u := strings.TrimSpace(filter.Username); u != "" {
			query = append(query, bson.E{Key: "username", Value: exactMatch(u)})
		}

		findPhases(ctx, r.coll, query, historyDocument.model, yield)
	}
}
