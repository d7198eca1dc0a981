package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-library-ledger/internal/logger"
	"github.com/sbilibin2017/gw-library-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
)

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Book not available
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps service errors to status codes. Unknown errors are logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, services.ErrBookNotAvailable):
		writeError(w, http.StatusNotFound, "Book not available")
	case errors.Is(err, services.ErrNoActiveLoan):
		writeError(w, http.StatusNotFound, "No active loan for this title")
	case errors.Is(err, services.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, services.ErrStoreUnavailable):
		logger.Log.Errorw("store unavailable", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusServiceUnavailable, "Service unavailable")
	default:
		logger.Log.Errorw("internal server error", "request_id", middlewares.RequestIDFromContext(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
