package ports

import (
	"context"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// SheetWriter turns tabular rows into a spreadsheet artifact on disk and
// returns its path. The file name is {prefix}_{UTC timestamp}.xlsx; one
// artifact per call, no dedup or retention.
type SheetWriter interface {
	Write(prefix string, headers []string, rows [][]any) (string, error)
}

// ExportService renders the caller-visible rows of one table into a
// spreadsheet file and returns its path.
type ExportService interface {
	Export(ctx context.Context, caller domain.User, table domain.Table) (string, error)
}
