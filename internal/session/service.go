package session

import (
	"context"
	"errors"
	"time"
)

// Service provides session lifecycle operations.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new session row.
func (s *Service) Create(ctx context.Context, sess *Session) error {
	return s.repo.Create(ctx, sess)
}

// Terminate deletes the session with the given id. Terminating a session
// that no longer exists is not an error.
func (s *Service) Terminate(ctx context.Context, id string) error {
	err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// IsLive reports whether the session exists and has not expired. It
// satisfies the httpx.SessionChecker contract.
func (s *Service) IsLive(ctx context.Context, id string) (bool, error) {
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return sess.ExpiresAt.After(time.Now()), nil
}

// PurgeExpired drops sessions past their expiry.
func (s *Service) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx)
}
