package ports

import (
	"context"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

type AuthService interface {
	// Register creates an account with the given role. The public signup
	// boundary must only ever pass domain.RoleUser; the admin surface may
	// pass domain.RoleAdmin.
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	// Failures distinguish domain.ErrUserNotFound from
	// domain.ErrInvalidPassword so callers can render distinct messages.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// EnsureBootstrapAdmin creates the administrator account if the given
	// username does not exist yet. Called once at startup.
	EnsureBootstrapAdmin(ctx context.Context, username, password string) error
}
