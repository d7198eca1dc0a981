package handlers

import (
	"bytes"
	"encoding/json"
	"iter"
	"net/http"
	"net/http/httptest"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/sbilibin2017/gw-library-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-library-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-library-ledger/internal/models"
)

var testExpiry = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

// newAuthedRequest builds a request as if AuthMiddleware had accepted alice's token.
func newAuthedRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	claims := &jwt.Claims{
		Username: "alice",
		Role:     models.RoleUser,
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: gojwt.NewNumericDate(testExpiry),
		},
	}
	return req.WithContext(middlewares.WithClaims(req.Context(), claims))
}

func seqOf[T any](items []T, err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
		if err != nil {
			var zero T
			yield(zero, err)
		}
	}
}
