package admin

import (
	"context"
	"errors"
	"time"
)

// Service performs admin authorization checks.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authorize looks up the admin record for email. A missing row is
// Unauthorized; a lookup failure is ServiceError. Callers collapse both to
// the same redirect-to-login behavior, which keeps the gate fail-closed
// without losing the distinction here.
func (s *Service) Authorize(ctx context.Context, email string) Authorization {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Authorization{Decision: DecisionUnauthorized}
		}
		return Authorization{Decision: DecisionServiceError, Err: err}
	}
	return Authorization{Decision: DecisionAuthorized, Admin: a}
}

// RecordLogin stamps last_login after a fully authorized sign-in.
func (s *Service) RecordLogin(ctx context.Context, email string, at time.Time) error {
	return s.repo.TouchLastLogin(ctx, email, at)
}
