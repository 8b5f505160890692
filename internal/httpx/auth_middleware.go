package httpx

import (
	"context"
	"net/http"
	"strings"

	"fragranceapi/internal/platform/crypto"
)

// SessionChecker reports whether the session identified by a token id is
// still live. A session deleted by sign-out (or by the unauthorized-login
// cleanup) makes its token unusable even before the JWT expires.
type SessionChecker interface {
	IsLive(ctx context.Context, tokenID string) (bool, error)
}

// AuthMiddleware authenticates admin requests. Every failure mode yields
// the same 401; the gate fails closed and never tells the caller which
// arm rejected it.
func AuthMiddleware(secret string, sessions SessionChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := crypto.ParseToken(secret, token)
			if err != nil {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
				return
			}

			live, err := sessions.IsLive(r.Context(), claims.ID)
			if err != nil || !live {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
				return
			}

			ctx := ContextWithIdentity(r.Context(), claims.Email, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
