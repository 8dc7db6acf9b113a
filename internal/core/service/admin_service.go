package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

// AdminService implements the administrator-only surface.
type AdminService struct {
	users   ports.UserRepository
	records ports.RecordRepository
	log     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, records ports.RecordRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, records: records, log: log}
}

// ListUsersWithBreakdown returns every account with its per-table record
// counts. Password hashes never leave this method.
func (s *AdminService) ListUsersWithBreakdown(ctx context.Context) ([]ports.UserBreakdown, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]ports.UserBreakdown, 0, len(users))
	for _, u := range users {
		entry := ports.UserBreakdown{
			Username:     u.Username,
			Role:         u.Role,
			CreatedAt:    u.CreatedAt,
			RecordCounts: make(map[domain.Table]int64, len(domain.Tables())),
		}
		for _, table := range domain.Tables() {
			n, err := s.records.CountByOwner(ctx, table, u.Username)
			if err != nil {
				return nil, fmt.Errorf("count %s for %s: %w", table, u.Username, err)
			}
			entry.RecordCounts[table] = n
		}
		out = append(out, entry)
	}

	return out, nil
}

// ClearAllRecords empties the five operational tables in one transaction.
// Accounts are preserved.
func (s *AdminService) ClearAllRecords(ctx context.Context) error {
	if err := s.records.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	s.log.Warn().Msg("all operational data cleared")
	return nil
}
