package auth

import (
	"context"
	"fmt"
	"time"

	"fragranceapi/internal/admin"
	"fragranceapi/internal/platform/crypto"
	"fragranceapi/internal/session"

	"github.com/rs/zerolog/log"
)

const tokenTTL = 12 * time.Hour

// LoginResult is returned after a fully authorized sign-in. Admin carries
// the profile as it was before this sign-in, so Admin.LastLogin still shows
// the previous visit (nil on the first).
type LoginResult struct {
	Token     string
	ExpiresIn int // seconds
	Admin     admin.AdminUser
}

// Service implements the admin sign-in gate.
type Service struct {
	secret   string
	creds    CredentialRepository
	sessions *session.Service
	admins   *admin.Service
}

func NewService(secret string, creds CredentialRepository, sessions *session.Service, admins *admin.Service) *Service {
	return &Service{
		secret:   secret,
		creds:    creds,
		sessions: sessions,
		admins:   admins,
	}
}

// Login verifies the credentials, creates a session and authorizes the
// identity against admin_users. An identity that authenticates but is not
// an administrator never keeps a session: the one just created is
// terminated before ErrUnauthorizedAdmin is returned.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	cred, err := s.creds.GetByEmail(ctx, email)
	if err != nil || !crypto.VerifyPassword(cred.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, jti, err := crypto.GenerateToken(s.secret, email, tokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate token: %w", err)
	}

	sess := &session.Session{
		ID:        jti,
		Email:     email,
		ExpiresAt: time.Now().Add(tokenTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	authz := s.admins.Authorize(ctx, email)
	if !authz.Authorized() {
		if termErr := s.sessions.Terminate(ctx, jti); termErr != nil {
			log.Error().Err(termErr).Msg("terminate session after unauthorized login")
		}
		if authz.Decision == admin.DecisionServiceError {
			log.Error().Err(authz.Err).Msg("admin lookup failed during login")
		}
		return LoginResult{}, ErrUnauthorizedAdmin
	}

	if err := s.admins.RecordLogin(ctx, email, time.Now()); err != nil {
		// The sign-in already succeeded; a missed last_login stamp is
		// diagnostic only.
		log.Error().Err(err).Str("email", email).Msg("record last login")
	}

	return LoginResult{
		Token:     token,
		ExpiresIn: int(tokenTTL.Seconds()),
		Admin:     authz.Admin,
	}, nil
}

// Logout terminates the session identified by tokenID unconditionally.
func (s *Service) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.Terminate(ctx, tokenID)
}
