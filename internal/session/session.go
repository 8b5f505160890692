// Package session persists admin sign-in sessions. A session row is created
// at login, keyed by the access token's jti, and deleted by sign-out or by
// the unauthorized-login cleanup. A token without a matching live row is
// treated as signed out regardless of its expiry.
package session

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	ID         string    `json:"id"` // token jti
	Email      string    `json:"email"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
	LastUsedAt time.Time `json:"last_used_at"`
}
