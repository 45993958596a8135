package middleware

import (
	"net/http"
	"strings"
)

// CORS returns middleware implementing the gallery API's cross-origin policy.
// Every response carries an Access-Control-Allow-Origin header: the request's
// own origin when it is on the allow-list (or is a localhost dev origin),
// otherwise the first configured origin, or "*" when none is configured.
// Preflight OPTIONS requests short-circuit to an empty 204.
//
// go-chi/cors cannot express the always-present fallback header this contract
// requires, so the policy is implemented directly.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	fallback := "*"
	if len(allowedOrigins) > 0 {
		fallback = allowedOrigins[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allow := fallback
			if origin := r.Header.Get("Origin"); originAllowed(origin, allowedOrigins) {
				allow = origin
			}

			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allow)
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	// Local development exception.
	if strings.Contains(origin, "localhost") {
		return true
	}
	for _, o := range allowed {
		if o == origin {
			return true
		}
	}
	return false
}
