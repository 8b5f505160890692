// Package auth verifies administrator credentials and manages the sign-in
// and sign-out flows.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; callers must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorizedAdmin means the credentials verified but no
	// admin_users row matches the identity.
	ErrUnauthorizedAdmin = errors.New("unauthorized access")
)

// Credential is an authenticated identity's stored secret.
type Credential struct {
	Email        string
	PasswordHash string
}

// CredentialRepository defines the contract for the identity store.
type CredentialRepository interface {
	GetByEmail(ctx context.Context, email string) (Credential, error)
}

// ErrCredentialNotFound is returned by the repository for an unknown email.
// The service folds it into ErrInvalidCredentials.
var ErrCredentialNotFound = errors.New("credential not found")
