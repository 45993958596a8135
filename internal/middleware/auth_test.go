package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubAuthorizer bool

func (s stubAuthorizer) Authorize(r *http.Request) bool { return bool(s) }

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("protected"))
	})

	t.Run("authorized request passes through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAuth(stubAuthorizer(true))(next).ServeHTTP(rec, httptest.NewRequest("POST", "/api/upload", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "protected", rec.Body.String())
	})

	t.Run("unauthorized request is rejected before the handler", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAuth(stubAuthorizer(false))(next).ServeHTTP(rec, httptest.NewRequest("POST", "/api/upload", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})
}
