package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	emailKey     contextKey = "email"
	tokenIDKey   contextKey = "tokenID"
	requestIDKey contextKey = "requestID"
)

// EmailFrom retrieves the authenticated email from the request context.
func EmailFrom(r *http.Request) string {
	if v, ok := r.Context().Value(emailKey).(string); ok {
		return v
	}
	return ""
}

// TokenIDFrom retrieves the session token id (jti) from the request context.
func TokenIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(tokenIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithIdentity returns a new context carrying the authenticated
// email and the session token id.
func ContextWithIdentity(ctx context.Context, email, tokenID string) context.Context {
	ctx = context.WithValue(ctx, emailKey, email)
	return context.WithValue(ctx, tokenIDKey, tokenID)
}

// RequestIDFrom retrieves the request id from the request context.
func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithRequestID returns a new context with the request id.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
