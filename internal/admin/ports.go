package admin

import (
	"context"
	"time"
)

// Repository defines the contract for admin user storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (AdminUser, error)
	TouchLastLogin(ctx context.Context, email string, at time.Time) error
}
