package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
	"github.com/sbilibin2017/gw-library-ledger/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBookHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.Must(uuid.NewV7())

	tests := []struct {
		name         string
		body         any
		mockSetup    func(m *MockBookAdder)
		expectedCode int
	}{
		{
			name: "success",
			body: AddBookRequest{Title: "1984", Author: "Orwell", Year: "1949", Genre: "Dystopian"},
			mockSetup: func(m *MockBookAdder) {
				m.EXPECT().AddBook(gomock.Any(), "1984", "Orwell", "1949", "Dystopian").Return(id, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "missing author",
			body: AddBookRequest{Title: "1984"},
			mockSetup: func(m *MockBookAdder) {
				m.EXPECT().AddBook(gomock.Any(), "1984", "", "", "").Return(uuid.Nil, services.ErrValidation)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid json",
			body:         "{",
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockBookAdder(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(m)
			}

			rr := httptest.NewRecorder()
			NewAddBookHandler(m)(rr, newAuthedRequest(http.MethodPost, "/books", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusCreated {
				var resp AddBookResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, id, resp.ID)
			}
		})
	}
}

func TestListBooksHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	book := models.Book{ID: uuid.Must(uuid.NewV7()), Title: "Dune", Author: "Herbert", Available: true}

	t.Run("filters from query", func(t *testing.T) {
		m := NewMockBookLister(ctrl)
		m.EXPECT().
			ListBooks(gomock.Any(), models.BookFilter{AvailableOnly: true, TitleContains: "du"}).
			Return(seqOf([]models.Book{book}, nil))

		rr := httptest.NewRecorder()
		NewListBooksHandler(m)(rr, newAuthedRequest(http.MethodGet, "/books?available=true&q=du", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var resp BooksResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, []models.Book{book}, resp.Books)
	})

	t.Run("empty catalog", func(t *testing.T) {
		m := NewMockBookLister(ctrl)
		m.EXPECT().ListBooks(gomock.Any(), models.BookFilter{}).Return(seqOf[models.Book](nil, nil))

		rr := httptest.NewRecorder()
		NewListBooksHandler(m)(rr, newAuthedRequest(http.MethodGet, "/books", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"books":[]}`, rr.Body.String())
	})

	t.Run("bad available flag", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewListBooksHandler(NewMockBookLister(ctrl))(rr, newAuthedRequest(http.MethodGet, "/books?available=maybe", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("store unavailable mid-listing", func(t *testing.T) {
		m := NewMockBookLister(ctrl)
		m.EXPECT().ListBooks(gomock.Any(), gomock.Any()).Return(seqOf([]models.Book{book}, models.ErrStoreUnavailable))

		rr := httptest.NewRecorder()
		NewListBooksHandler(m)(rr, newAuthedRequest(http.MethodGet, "/books", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}

func TestBorrowHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loanID := uuid.Must(uuid.NewV7())

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{name: "success", expectedCode: http.StatusCreated, expectedBody: `{"loan_id":"` + loanID.String() + `"}`},
		{name: "not available", err: services.ErrBookNotAvailable, expectedCode: http.StatusNotFound, expectedBody: `{"error":"Book not available"}`},
		{name: "store unavailable", err: models.ErrStoreUnavailable, expectedCode: http.StatusServiceUnavailable, expectedBody: `{"error":"Service unavailable"}`},
		{name: "inconsistent", err: services.ErrInconsistentState, expectedCode: http.StatusInternalServerError, expectedBody: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockBorrower(ctrl)
			id := loanID
			if tt.err != nil {
				id = uuid.Nil
			}
			m.EXPECT().BorrowBook(gomock.Any(), "1984", "alice").Return(id, tt.err)

			rr := httptest.NewRecorder()
			NewBorrowHandler(m)(rr, newAuthedRequest(http.MethodPost, "/borrow", BorrowRequest{Title: "1984"}))

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.JSONEq(t, tt.expectedBody, rr.Body.String())
		})
	}

	t.Run("no claims", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewBorrowHandler(NewMockBorrower(ctrl))(rr, httptest.NewRequest(http.MethodPost, "/borrow", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestReturnHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		m := NewMockReturner(ctrl)
		m.EXPECT().ReturnBook(gomock.Any(), "1984", "alice").Return(nil)

		rr := httptest.NewRecorder()
		NewReturnHandler(m)(rr, newAuthedRequest(http.MethodPost, "/return", ReturnRequest{Title: "1984"}))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"message":"Book returned"}`, rr.Body.String())
	})

	t.Run("no active loan lists held titles", func(t *testing.T) {
		m := NewMockReturner(ctrl)
		gomock.InOrder(
			m.EXPECT().ReturnBook(gomock.Any(), "Dune", "alice").Return(services.ErrNoActiveLoan),
			m.EXPECT().ActiveLoanTitles(gomock.Any(), "alice").Return([]string{"1984"}, nil),
		)

		rr := httptest.NewRecorder()
		NewReturnHandler(m)(rr, newAuthedRequest(http.MethodPost, "/return", ReturnRequest{Title: "Dune"}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"No active loan for this title","borrowed_titles":["1984"]}`, rr.Body.String())
	})

	t.Run("no active loan and listing fails", func(t *testing.T) {
		m := NewMockReturner(ctrl)
		m.EXPECT().ReturnBook(gomock.Any(), "Dune", "alice").Return(services.ErrNoActiveLoan)
		m.EXPECT().ActiveLoanTitles(gomock.Any(), "alice").Return(nil, errors.New("boom"))

		rr := httptest.NewRecorder()
		NewReturnHandler(m)(rr, newAuthedRequest(http.MethodPost, "/return", ReturnRequest{Title: "Dune"}))

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"No active loan for this title","borrowed_titles":[]}`, rr.Body.String())
	})

	t.Run("validation", func(t *testing.T) {
		m := NewMockReturner(ctrl)
		m.EXPECT().ReturnBook(gomock.Any(), "", "alice").Return(services.ErrValidation)

		rr := httptest.NewRecorder()
		NewReturnHandler(m)(rr, newAuthedRequest(http.MethodPost, "/return", ReturnRequest{}))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListLoansHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := NewMockLoanLister(ctrl)
	m.EXPECT().ActiveLoanTitles(gomock.Any(), "alice").Return(nil, nil)

	rr := httptest.NewRecorder()
	NewListLoansHandler(m)(rr, newAuthedRequest(http.MethodGet, "/loans", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"borrowed_titles":[]}`, rr.Body.String())
}

func TestListHistoryHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	borrowedOn := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	entries := []models.HistoryEntry{
		{ID: uuid.Must(uuid.NewV7()), Username: "alice", BookTitle: "1984", Action: models.ActionBorrowed, BorrowedOn: &borrowedOn},
		{ID: uuid.Must(uuid.NewV7()), Username: "alice", BookTitle: "1984", Action: models.ActionReturned},
	}

	m := NewMockHistoryLister(ctrl)
	m.EXPECT().ListHistory(gomock.Any(), models.HistoryFilter{Username: "alice"}).Return(seqOf(entries, nil))

	rr := httptest.NewRecorder()
	NewListHistoryHandler(m)(rr, newAuthedRequest(http.MethodGet, "/history?username=alice", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp HistoryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Entries, 2)
	assert.Equal(t, "2024-05-01 09:30", resp.Entries[0].Date)
	assert.Equal(t, "-", resp.Entries[1].Date)
	assert.Equal(t, models.ActionReturned, resp.Entries[1].Action)
}

func TestLogoutHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("success", func(t *testing.T) {
		m := NewMockLogouter(ctrl)
		m.EXPECT().Logout(gomock.Any(), "jti-1", testExpiry).Return(nil)

		rr := httptest.NewRecorder()
		NewLogoutHandler(m)(rr, newAuthedRequest(http.MethodPost, "/logout", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("store unavailable", func(t *testing.T) {
		m := NewMockLogouter(ctrl)
		m.EXPECT().Logout(gomock.Any(), "jti-1", testExpiry).Return(models.ErrStoreUnavailable)

		rr := httptest.NewRecorder()
		NewLogoutHandler(m)(rr, newAuthedRequest(http.MethodPost, "/logout", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})
}
