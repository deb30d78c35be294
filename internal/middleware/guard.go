package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/messagely/messagely/internal/auth"
)

// RequireAuthenticated returns middleware that rejects requests with
// no attached identity. Must be applied after Authenticate.
func RequireAuthenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.IdentityFromContext(r.Context()) == nil {
				writeGuardError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser returns middleware that rejects requests whose attached
// identity does not match the named URL parameter. A missing identity
// is a rejection, not a fault, so this guard also stands alone even
// though routes normally compose it after RequireAuthenticated.
func RequireUser(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := auth.IdentityFromContext(r.Context())
			if id == nil || id.Username != chi.URLParam(r, param) {
				writeGuardError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeGuardError writes a 401 Unauthorized response.
// Uses the same message for all guard failures to prevent enumeration.
func writeGuardError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Unauthorized","code":"UNAUTHORIZED"}`))
}
