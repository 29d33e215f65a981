package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-catalog-server/token"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyClaims stores the authenticated user's access-token claims
const ContextKeyClaims ContextKey = "claims"

// ClaimsFromContext returns the access claims RequireAuth attached to the
// request, if any.
func ClaimsFromContext(ctx context.Context) (*token.AccessClaims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*token.AccessClaims)
	return claims, ok
}

// RequireAuth is middleware that validates a Bearer access token and
// injects its claims into the request context. A missing credential is a
// 401; a credential that fails to decode is a 403.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken := bearerToken(r)
			if rawToken == "" {
				s.respondErrors(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := s.auth.Authenticate(rawToken)
			if err != nil {
				s.respondErrors(w, http.StatusForbidden, "Invalid or expired access token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireAdmin gates an operation on the role claim. Must be chained
// after RequireAuth.
func (s *Server) RequireAdmin() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || claims.Role != "admin" {
				w.Header().Set("Content-Type", contentTypeJSON)
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"Admin access required"}`))
				return
			}
			next(w, r)
		}
	}
}

func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
