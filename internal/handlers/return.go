package handlers

//go:generate mockgen -source=return.go -destination=mock_return.go -package=handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
)

// Returner takes books back.
type Returner interface {
	ReturnBook(ctx context.Context, title, username string) error
	ActiveLoanTitles(ctx context.Context, username string) ([]string, error)
}

// ReturnRequest names the title to return
// swagger:model ReturnRequest
type ReturnRequest struct {
	// required: true
	// default: 1984
	Title string `json:"title"`
}

// ReturnResponse represents a successful return
// swagger:model ReturnResponse
type ReturnResponse struct {
	// default: Book returned
	Message string `json:"message"`
}

// NoActiveLoanResponse lists what the caller does hold
// swagger:model NoActiveLoanResponse
type NoActiveLoanResponse struct {
	// default: No active loan for this title
	Error string `json:"error"`

	BorrowedTitles []string `json:"borrowed_titles"`
}

// NewReturnHandler returns an HTTP handler that ends the caller's loan of a title.
// @Summary Return a book
// @Description Ends the caller's oldest loan of the title. When there is none the response lists the titles the caller holds.
// @Tags loans
// @Accept json
// @Produce json
// @Param returnRequest body handlers.ReturnRequest true "Title"
// @Success 200 {object} handlers.ReturnResponse "Book returned"
// @Failure 400 {object} handlers.ErrorResponse "Title is required"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.NoActiveLoanResponse "No active loan"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /return [post]
// @Security BearerAuth
func NewReturnHandler(svc Returner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := middlewares.ClaimsFromContext(ctx)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req ReturnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		err := svc.ReturnBook(ctx, req.Title, claims.Username)
		if errors.Is(err, services.ErrNoActiveLoan) {
			titles, listErr := svc.ActiveLoanTitles(ctx, claims.Username)
			if listErr != nil {
				logger.Log.Errorw("failed to list active loans", "username", claims.Username, "err", listErr)
			}
			if titles == nil {
				titles = []string{}
			}
			writeJSON(w, http.StatusNotFound, NoActiveLoanResponse{
				Error:          "No active loan for this title",
				BorrowedTitles: titles,
			})
			return
		}
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		logger.Log.Infow("book returned", "username", claims.Username, "title", req.Title)
		writeJSON(w, http.StatusOK, ReturnResponse{Message: "Book returned"})
	}
}
