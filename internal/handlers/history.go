package handlers

//go:generate mockgen -source=history.go -destination=mock_history.go -package=handlers

import (
	"context"
	"iter"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

// HistoryLister streams the borrow/return log.
type HistoryLister interface {
	ListHistory(ctx context.Context, filter models.HistoryFilter) iter.Seq2[models.HistoryEntry, error]
}

// HistoryItem is one history line
// swagger:model HistoryItem
type HistoryItem struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	BookID    uuid.UUID     `json:"book_id"`
	BookTitle string        `json:"book_title"`
	Action    models.Action `json:"action"`
	// Borrow or return time formatted as 2006-01-02 15:04, or "-" when unknown
	Date string `json:"date"`
}

// HistoryResponse lists history entries
// swagger:model HistoryResponse
type HistoryResponse struct {
	Entries []HistoryItem `json:"entries"`
}

// NewListHistoryHandler returns an HTTP handler listing the history log.
// @Summary List history
// @Description Borrow and return entries in the order they happened
// @Tags loans
// @Produce json
// @Param username query string false "Only this user's entries (case-insensitive)"
// @Success 200 {object} handlers.HistoryResponse "History"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 503 {object} handlers.ErrorResponse "Store unavailable"
// @Router /history [get]
// @Security BearerAuth
func NewListHistoryHandler(svc HistoryLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := models.HistoryFilter{Username: r.URL.Query().Get("username")}

		items := []HistoryItem{}
		for e, err := range svc.ListHistory(r.Context(), filter) {
			if err != nil {
				writeServiceError(w, r, err)
				return
			}
			items = append(items, HistoryItem{
				ID:        e.ID,
				Username:  e.Username,
				BookID:    e.BookID,
				BookTitle: e.BookTitle,
				Action:    e.Action,
				Date:      e.DisplayDate(),
			})
		}

		writeJSON(w, http.StatusOK, HistoryResponse{Entries: items})
	}
}
