package admin

import (
	"context"
	"net/http"

	"fragranceapi/internal/httpx"

	"github.com/rs/zerolog/log"
)

type contextKey string

const adminKey contextKey = "adminUser"

// AdminFrom retrieves the authorized admin record from the request context.
func AdminFrom(r *http.Request) (AdminUser, bool) {
	a, ok := r.Context().Value(adminKey).(AdminUser)
	return a, ok
}

// RequireAdmin gates management routes behind the admin_users lookup. Both
// an unknown email and a store failure produce the same 401; service errors
// are logged so operators can tell the arms apart in diagnostics.
func RequireAdmin(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := httpx.EmailFrom(r)
			authz := service.Authorize(r.Context(), email)
			if !authz.Authorized() {
				if authz.Decision == DecisionServiceError {
					log.Error().Err(authz.Err).
						Str("request_id", httpx.RequestIDFrom(r)).
						Msg("admin authorization check failed")
				}
				httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access", nil)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, authz.Admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
