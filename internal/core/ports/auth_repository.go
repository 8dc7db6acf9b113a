package ports

import (
	"context"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// UserRepository defines the interface for account persistence. Accounts are
// created once and never updated or deleted through the public surface.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns every account ordered by username. Password hashes are
	// populated; callers exposing users over the wire must strip them.
	List(ctx context.Context) ([]*domain.User, error)
}
