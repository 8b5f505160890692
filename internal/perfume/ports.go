package perfume

import (
	"context"
)

// Repository defines the contract for perfume storage.
type Repository interface {
	List(ctx context.Context) ([]Perfume, error)
	GetByID(ctx context.Context, id string) (Perfume, error)
	Insert(ctx context.Context, p *Perfume) error
	Update(ctx context.Context, p *Perfume) error
	Delete(ctx context.Context, id string) error
}
