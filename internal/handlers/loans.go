package handlers

//go:generate mockgen -source=loans.go -destination=mock_loans.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-library-ledger/internal/middlewares"
)

// LoanLister lists a user's active loans.
type LoanLister interface {
	ActiveLoanTitles(ctx context.Context, username string) ([]string, error)
}

// LoansResponse lists the caller's borrowed titles
// swagger:model LoansResponse
type LoansResponse struct {
	BorrowedTitles []string `json:"borrowed_titles"`
}

// NewListLoansHandler returns an HTTP handler listing the caller's active loans.
// @Summary List my loans
// @Description Titles the caller currently holds, oldest loan first
// @Tags loans
// @Produce json
// @Success 200 {object} handlers.LoansResponse "Borrowed titles"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /loans [get]
// @Security BearerAuth
func NewListLoansHandler(svc LoanLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middlewares.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		titles, err := svc.ActiveLoanTitles(r.Context(), claims.Username)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		if titles == nil {
			titles = []string{}
		}

		writeJSON(w, http.StatusOK, LoansResponse{BorrowedTitles: titles})
	}
}
