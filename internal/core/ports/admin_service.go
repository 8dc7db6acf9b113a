package ports

import (
	"context"
	"time"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// UserBreakdown is one row of the admin user listing: the account (without
// password material) plus its record count per operational table.
type UserBreakdown struct {
	Username     string                 `json:"username"`
	Role         string                 `json:"role"`
	CreatedAt    time.Time              `json:"created_at"`
	RecordCounts map[domain.Table]int64 `json:"record_counts"`
}

// AdminService exposes the administrator-only surface. Authorisation is
// enforced at the transport boundary (RBAC middleware); these methods assume
// an admin caller.
type AdminService interface {
	ListUsersWithBreakdown(ctx context.Context) ([]UserBreakdown, error)
	// ClearAllRecords empties all five operational tables atomically while
	// preserving every account.
	ClearAllRecords(ctx context.Context) error
}
