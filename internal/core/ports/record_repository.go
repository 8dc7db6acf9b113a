package ports

import (
	"context"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// RecordRepository defines persistence for the five operational record
// collections. Every List method takes an owner filter: non-empty scopes the
// result to rows stamped with that owner, empty returns all rows (admin).
// Lists are ordered most-recent-first by insertion order.
type RecordRepository interface {
	InsertProduction(ctx context.Context, rec *domain.ProductionRecord) (string, error)
	ListProduction(ctx context.Context, owner string) ([]*domain.ProductionRecord, error)

	InsertEquipment(ctx context.Context, rec *domain.EquipmentRecord) (string, error)
	ListEquipment(ctx context.Context, owner string) ([]*domain.EquipmentRecord, error)
	// UpsertEquipmentByBusinessKey atomically overwrites the mutable fields
	// of the most recent record matching rec.EquipmentID, or inserts rec
	// when no match exists. It returns the stored row as persisted, so an
	// update reports the original owner and equipment type rather than the
	// caller's input. The flag reports whether a new row was created.
	UpsertEquipmentByBusinessKey(ctx context.Context, rec *domain.EquipmentRecord) (*domain.EquipmentRecord, bool, error)

	InsertInventory(ctx context.Context, rec *domain.InventoryRecord) (string, error)
	ListInventory(ctx context.Context, owner string) ([]*domain.InventoryRecord, error)

	InsertWorker(ctx context.Context, rec *domain.WorkerRecord) (string, error)
	ListWorkers(ctx context.Context, owner string) ([]*domain.WorkerRecord, error)

	InsertEnvironment(ctx context.Context, rec *domain.EnvironmentRecord) (string, error)
	ListEnvironment(ctx context.Context, owner string) ([]*domain.EnvironmentRecord, error)

	// CountByOwner returns the number of rows in table stamped with owner.
	CountByOwner(ctx context.Context, table domain.Table, owner string) (int64, error)
	// ClearAll removes every row from all five collections in a single
	// transaction. The users collection is never touched.
	ClearAll(ctx context.Context) error
}
