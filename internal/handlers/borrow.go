package handlers

//go:generate mockgen -source=borrow.go -destination=mock_borrow.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/middlewares"
)

// Borrower lends books.
type Borrower interface {
	BorrowBook(ctx context.Context, title, username string) (uuid.UUID, error)
}

// BorrowRequest names the title to borrow
// swagger:model BorrowRequest
type BorrowRequest struct {
	// required: true
	// default: 1984
	Title string `json:"title"`
}

// BorrowResponse carries the loan id
// swagger:model BorrowResponse
type BorrowResponse struct {
	LoanID uuid.UUID `json:"loan_id"`
}

// NewBorrowHandler returns an HTTP handler that lends a copy to the caller.
// @Summary Borrow a book
// @Description Lends the oldest available copy whose title matches case-insensitively
// @Tags loans
// @Accept json
// @Produce json
// @Param borrowRequest body handlers.BorrowRequest true "Title"
// @Success 201 {object} handlers.BorrowResponse "Loan created"
// @Failure 400 {object} handlers.ErrorResponse "Title is required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Book not available"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /borrow [post]
// @Security BearerAuth
func NewBorrowHandler(svc Borrower) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req BorrowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		loanID, err := svc.BorrowBook(r.Context(), req.Title, claims.Username)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		logger.Log.Infow("book borrowed", "username", claims.Username, "title", req.Title, "loan_id", loanID)
		writeJSON(w, http.StatusCreated, BorrowResponse{LoanID: loanID})
	}
}
