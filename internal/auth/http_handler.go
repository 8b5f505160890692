package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"fragranceapi/internal/admin"
	"fragranceapi/internal/httpx"

	"github.com/rs/zerolog/log"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /admin/login
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if validationErrors := httpx.ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationErrors)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
		case errors.Is(err, ErrUnauthorizedAdmin):
			httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access", nil)
		default:
			log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("admin login")
			httpx.JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		}
		return
	}

	httpx.JSONSuccess(w, r, map[string]any{
		"access_token": result.Token,
		"expires_in":   result.ExpiresIn,
		"admin":        result.Admin,
	}, nil)
}

// Logout handles POST /admin/logout. Sign-out always hands control back to
// the login view: a session-store failure is logged, not surfaced, since
// the operator is leaving either way and the row expires on its own.
func (h *HTTPHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID := httpx.TokenIDFrom(r)
	if tokenID == "" {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	if err := h.service.Logout(r.Context(), tokenID); err != nil {
		log.Error().Err(err).Str("request_id", httpx.RequestIDFrom(r)).Msg("terminate session on logout")
	}

	httpx.JSONSuccessNoContent(w)
}

// Me handles GET /admin/me. It runs behind the full gate, so the admin
// record is already in the request context; the view shows the username
// and last login time.
func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	a, ok := admin.AdminFrom(r)
	if !ok {
		httpx.JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized access", nil)
		return
	}
	httpx.JSONSuccess(w, r, a, nil)
}
