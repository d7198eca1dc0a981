package handlers

//go:generate mockgen -source=books.go -destination=mock_books.go -package=handlers

import (
	"context"
	"encoding/json"
	"iter"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

// BookAdder adds books to the catalog.
type BookAdder interface {
	AddBook(ctx context.Context, title, author, year, genre string) (uuid.UUID, error)
}

// BookLister streams the catalog.
type BookLister interface {
	ListBooks(ctx context.Context, filter models.BookFilter) iter.Seq2[models.Book, error]
}

// AddBookRequest represents the JSON body for adding a book
// swagger:model AddBookRequest
type AddBookRequest struct {
	// required: true
	// default: 1984
	Title string `json:"title"`

	// required: true
	// default: George Orwell
	Author string `json:"author"`

	// default: 1949
	Year string `json:"year"`

	// default: Dystopian
	Genre string `json:"genre"`
}

// AddBookResponse carries the id of the new copy
// swagger:model AddBookResponse
type AddBookResponse struct {
	ID uuid.UUID `json:"id"`
}

// BooksResponse lists catalog books
// swagger:model BooksResponse
type BooksResponse struct {
	Books []models.Book `json:"books"`
}

// NewAddBookHandler returns an HTTP handler that adds a book copy.
// @Summary Add a book
// @Description Adds an available copy to the catalog. Several copies may share a title. Admin only.
// @Tags books
// @Accept json
// @Produce json
// @Param addBookRequest body handlers.AddBookRequest true "Book"
// @Success 201 {object} handlers.AddBookResponse "Book added"
// @Failure 400 {object} handlers.ErrorResponse "Title and author are required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Admin role required"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /books [post]
// @Security BearerAuth
func NewAddBookHandler(svc BookAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddBookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		id, err := svc.AddBook(r.Context(), req.Title, req.Author, req.Year, req.Genre)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, AddBookResponse{ID: id})
	}
}

// NewListBooksHandler returns an HTTP handler that lists the catalog.
// @Summary List books
// @Description Lists books in the order they were added
// @Tags books
// @Produce json
// @Param available query bool false "Only available copies"
// @Param q query string false "Case-insensitive title substring"
// @Success 200 {object} handlers.BooksResponse "Books"
// @Failure 400 {object} handlers.ErrorResponse "Invalid query"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /books [get]
// @Security BearerAuth
func NewListBooksHandler(svc BookLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.BookFilter{TitleContains: r.URL.Query().Get("q")}
		if v := r.URL.Query().Get("available"); v != "" {
			available, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, "available must be a boolean")
				return
			}
			filter.AvailableOnly = available
		}

		books := []models.Book{}
		for book, err := range svc.ListBooks(r.Context(), filter) {
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			books = append(books, book)
		}

		writeJSON(w, http.StatusOK, BooksResponse{Books: books})
	}
}
