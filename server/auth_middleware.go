package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-session-service/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyIdentity stores the authenticated identity
const ContextKeyIdentity ContextKey = "identity"

// RequireAuth is middleware that validates the Bearer access token on the
// Authorization header and injects the identity into the request context.
// Verification is purely cryptographic; no session store lookup happens here.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, err := s.auth.VerifyAccess(r.Header.Get("Authorization"))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, response{Success: false, Message: err.Error()})
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, identity)
			next(w, r.WithContext(ctx))
		}
	}
}

// IdentityFromContext returns the identity injected by RequireAuth.
func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(ContextKeyIdentity).(token.Identity)
	return identity, ok
}
