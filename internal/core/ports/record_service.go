package ports

import (
	"context"
	"time"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// ClockInput is a 12-hour clock reading as captured by the shift forms.
type ClockInput struct {
	Hour     int
	Minute   int
	Meridiem string // "AM" or "PM"
}

type CreateProductionInput struct {
	HourlyTons     float64
	DailyTons      float64
	BlockW         float64
	BlockH         float64
	BlockL         float64
	Notes          string
	IdempotencyKey string
}

type CreateEquipmentInput struct {
	EquipmentType  string
	EquipmentID    string
	Status         domain.EquipmentStatus
	Start          ClockInput
	End            ClockInput
	ProductionTons float64
	IdempotencyKey string
}

// UpsertEquipmentInput carries the mutable fields overwritten by an upsert.
// EquipmentType is only applied when the upsert inserts a new record.
type UpsertEquipmentInput struct {
	EquipmentType  string
	Status         domain.EquipmentStatus
	Start          ClockInput
	End            ClockInput
	ProductionTons float64
}

type CreateInventoryInput struct {
	Location       string
	MaterialType   string
	Quantity       float64
	Unit           string
	DateStocked    time.Time
	IdempotencyKey string
}

type CreateWorkerInput struct {
	Name           string
	Role           string
	Shift          string
	Start          ClockInput
	End            ClockInput
	WorkingPlace   string
	HiredOn        time.Time
	IdempotencyKey string
}

type CreateEnvironmentInput struct {
	NoiseDB          float64
	AirQuality       domain.AirQuality
	WaterUsageL      float64
	ComplianceStatus domain.ComplianceStatus
	Notes            string
	IdempotencyKey   string
}

// DashboardSummary aggregates the caller-visible rows for the landing page.
type DashboardSummary struct {
	TotalStockpile   float64
	EquipmentRunning int
	EquipmentTotal   int
	ProductionCount  int
	AvgNoiseDB       *float64 // nil when there are no environment rows
}

// RecordService is the single entry point for operational record reads and
// writes. Every method takes the authenticated caller explicitly; there is
// no ambient session state. Reads are scoped by the caller's role: admins
// see every owner's rows, everyone else only their own.
type RecordService interface {
	InsertProduction(ctx context.Context, caller domain.User, in CreateProductionInput) (*domain.ProductionRecord, error)
	ListProduction(ctx context.Context, caller domain.User) ([]*domain.ProductionRecord, error)

	InsertEquipment(ctx context.Context, caller domain.User, in CreateEquipmentInput) (*domain.EquipmentRecord, error)
	ListEquipment(ctx context.Context, caller domain.User) ([]*domain.EquipmentRecord, error)
	// UpsertEquipment updates the latest record with the given business key
	// or creates one. The returned flag reports creation.
	UpsertEquipment(ctx context.Context, caller domain.User, equipmentID string, in UpsertEquipmentInput) (*domain.EquipmentRecord, bool, error)

	InsertInventory(ctx context.Context, caller domain.User, in CreateInventoryInput) (*domain.InventoryRecord, error)
	ListInventory(ctx context.Context, caller domain.User) ([]*domain.InventoryRecord, error)

	InsertWorker(ctx context.Context, caller domain.User, in CreateWorkerInput) (*domain.WorkerRecord, error)
	ListWorkers(ctx context.Context, caller domain.User) ([]*domain.WorkerRecord, error)

	InsertEnvironment(ctx context.Context, caller domain.User, in CreateEnvironmentInput) (*domain.EnvironmentRecord, error)
	ListEnvironment(ctx context.Context, caller domain.User) ([]*domain.EnvironmentRecord, error)

	Dashboard(ctx context.Context, caller domain.User) (*DashboardSummary, error)
}
