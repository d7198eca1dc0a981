package mongodb

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookDocument struct {
	ID        any    `bson:"_id"`
	Title     string `bson:"title"`
	Author    string `bson:"author"`
	Year      string `bson:"year"`
	Genre     string `bson:"genre"`
	Available bool   `bson:"available"`
}

func newBookDocument(b models.Book) bookDocument {
	return bookDocument{
		ID:        docKey(b.ID),
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		Genre:     b.Genre,
		Available: b.Available,
	}
}

func (d bookDocument) model() (models.Book, error) {
	id, err := parseKey(d.ID)
	if err != nil {
		return models.Book{}, fmt.Errorf("book %v: %w", d.ID, err)
	}
	return models.Book{
		ID:        id,
		Title:     d.Title,
		Author:    d.Author,
		Year:      d.Year,
		Genre:     d.Genre,
		Available: d.Available,
	}, nil
}

type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(coll *mongo.Collection) *BookRepository {
	return &BookRepository{coll: coll}
}

func (r *BookRepository) Create(ctx context.Context, book models.Book) error {
	_, err := r.coll.InsertOne(ctx, newBookDocument(book))
	logOp(r.coll, "insert", book.ID, nil, err)
	return classify(err)
}

// ClaimAvailableByTitle flips the oldest available copy with a matching title to
// unavailable in one findAndModify. Migrated copies are tried first. Returns nil, nil
// when no copy is available.
func (r *BookRepository) ClaimAvailableByTitle(ctx context.Context, title string) (*models.Book, error) {
	filter := bson.D{
		{Key: "title", Value: exactMatch(title)},
		{Key: "available", Value: true},
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "available", Value: false}}}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)

	for _, phase := range keyPhases {
		phaseFilter := withPhase(filter, phase)

		var doc bookDocument
		err := r.coll.FindOneAndUpdate(ctx, phaseFilter, update, opts).Decode(&doc)
		logOp(r.coll, "claim", phaseFilter, doc.ID, err)

		if errors.Is(err, mongo.ErrNoDocuments) {
			continue
		}
		if err != nil {
			return nil, classify(err)
		}

		book, err := doc.model()
		if err != nil {
			return nil, err
		}
		return &book, nil
	}
	return nil, nil
}

// Release marks a borrowed book available. It reports false when no borrowed
// book with that id exists.
func (r *BookRepository) Release(ctx context.Context, bookID uuid.UUID) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: docKey(bookID)},
		{Key: "available", Value: false},
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "available", Value: true}}}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	var matched int64
	if res != nil {
		matched = res.MatchedCount
	}
	logOp(r.coll, "release", filter, matched, err)

	if err != nil {
		return false, classify(err)
	}
	return matched == 1, nil
}

// List streams books ordered by id, migrated copies first. Every iteration opens
// new cursors.
func (r *BookRepository) List(ctx context.Context, filter models.BookFilter) iter.Seq2[models.Book, error] {
	return func(yield func(models.Book, error) bool) {
		query := bson.D{}
		if filter.AvailableOnly {
			query = append(query, bson.E{Key: "available", Value: true})
		}
		if q := strings.TrimSpace(filter.TitleContains); q != "" {
			query = append(query, bson.E{Key: "title", Value: containsMatch(q)})
		}

		findPhases(ctx, r.coll, query, bookDocument.model, yield)
	}
}
