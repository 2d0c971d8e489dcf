package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

// UserContextKey is where verified claims live in a request context
const UserContextKey contextKey = "user"

// Middleware verifies the Bearer token on every request and stores the
// claims in the request context.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				// Browsers cannot set headers on WebSocket dials, so the
				// token may arrive as a query parameter instead.
				header = r.URL.Query().Get("token")
			} else {
				header = strings.TrimPrefix(header, "Bearer ")
			}

			if header == "" {
				http.Error(w, "missing authorization token", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.Verify(header)
			if err != nil {
				http.Error(w, "invalid authorization token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims stored by Middleware
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	return claims, ok
}
