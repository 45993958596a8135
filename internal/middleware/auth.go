package middleware

import (
	"net/http"

	"github.com/shaadination/gallery-api/internal/response"
)

// Authorizer reports whether a request carries valid credentials.
type Authorizer interface {
	Authorize(r *http.Request) bool
}

// RequireAuth returns middleware that rejects requests whose bearer token
// fails verification. The response deliberately does not distinguish a
// missing header from an invalid or expired token.
func RequireAuth(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Authorize(r) {
				response.Unauthorized(w, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
