package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis). Keys identify one
// logical form submission; a seen key means the write already happened.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}

// RecordService implements ports.RecordService. It owns the access gate:
// scopeOwner is the single place deciding which rows a caller may read, and
// every write stamps the caller as owner — admins included.
type RecordService struct {
	repo  ports.RecordRepository
	dedup DedupChecker
	log   zerolog.Logger
}

func NewRecordService(repo ports.RecordRepository, dedup DedupChecker, log zerolog.Logger) *RecordService {
	return &RecordService{repo: repo, dedup: dedup, log: log}
}

// scopeOwner translates the caller into the repository owner filter: admins
// read unscoped, everyone else reads only their own rows.
func scopeOwner(caller domain.User) string {
	if caller.IsAdmin() {
		return ""
	}
	return caller.Username
}

// checkDuplicate consults the idempotency store when the submission carries
// a key. A store failure is logged and the write proceeds: losing dedup is
// preferable to losing records.
func (s *RecordService) checkDuplicate(ctx context.Context, table domain.Table, caller domain.User, key string) error {
	if key == "" {
		return nil
	}
	dedupKey := fmt.Sprintf("submit:%s:%s:%s", table, caller.Username, key)

	isDup, err := s.dedup.IsDuplicate(ctx, dedupKey)
	if err != nil {
		s.log.Warn().Err(err).Str("table", string(table)).Msg("dedup check failed, accepting submission")
		return nil
	}
	if isDup {
		s.log.Debug().Str("table", string(table)).Str("username", caller.Username).Msg("duplicate submission suppressed")
		return domain.ErrDuplicateSubmission
	}

	if markErr := s.dedup.Mark(ctx, dedupKey); markErr != nil {
		s.log.Warn().Err(markErr).Str("table", string(table)).Msg("failed to set dedup key")
	}
	return nil
}

func (s *RecordService) InsertProduction(ctx context.Context, caller domain.User, in ports.CreateProductionInput) (*domain.ProductionRecord, error) {
	if err := s.checkDuplicate(ctx, domain.TableProduction, caller, in.IdempotencyKey); err != nil {
		return nil, err
	}

	rec := &domain.ProductionRecord{
		Timestamp:   time.Now().UTC(),
		HourlyTons:  in.HourlyTons,
		DailyTons:   in.DailyTons,
		BlockW:      in.BlockW,
		BlockH:      in.BlockH,
		BlockL:      in.BlockL,
		BlockVolume: domain.BlockVolume(in.BlockW, in.BlockH, in.BlockL),
		Notes:       in.Notes,
		Owner:       caller.Username,
	}

	id, err := s.repo.InsertProduction(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert production: %w", err)
	}
	rec.ID = id

	s.log.Info().Str("id", id).Str("username", caller.Username).Msg("production record saved")
	return rec, nil
}

func (s *RecordService) ListProduction(ctx context.Context, caller domain.User) ([]*domain.ProductionRecord, error) {
	return s.repo.ListProduction(ctx, scopeOwner(caller))
}

func (s *RecordService) InsertEquipment(ctx context.Context, caller domain.User, in ports.CreateEquipmentInput) (*domain.EquipmentRecord, error) {
	if err := s.checkDuplicate(ctx, domain.TableEquipment, caller, in.IdempotencyKey); err != nil {
		return nil, err
	}

	rec, err := buildEquipmentRecord(in.EquipmentType, in.EquipmentID, in.Status, in.Start, in.End, in.ProductionTons, caller)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.InsertEquipment(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert equipment: %w", err)
	}
	rec.ID = id

	s.log.Info().Str("id", id).Str("equipment_id", rec.EquipmentID).Str("username", caller.Username).Msg("equipment record saved")
	return rec, nil
}

func (s *RecordService) ListEquipment(ctx context.Context, caller domain.User) ([]*domain.EquipmentRecord, error) {
	return s.repo.ListEquipment(ctx, scopeOwner(caller))
}

// UpsertEquipment updates the most recent record carrying equipmentID, or
// creates one when none exists. The repository performs the read-then-write
// atomically and returns the row as persisted, so an update reports the
// stored owner and equipment type, not the caller's input.
func (s *RecordService) UpsertEquipment(ctx context.Context, caller domain.User, equipmentID string, in ports.UpsertEquipmentInput) (*domain.EquipmentRecord, bool, error) {
	if equipmentID == "" {
		return nil, false, fmt.Errorf("%w: equipment id required", domain.ErrInvalidInput)
	}

	rec, err := buildEquipmentRecord(in.EquipmentType, equipmentID, in.Status, in.Start, in.End, in.ProductionTons, caller)
	if err != nil {
		return nil, false, err
	}

	stored, created, err := s.repo.UpsertEquipmentByBusinessKey(ctx, rec)
	if err != nil {
		return nil, false, fmt.Errorf("upsert equipment %s: %w", equipmentID, err)
	}

	s.log.Info().
		Str("id", stored.ID).
		Str("equipment_id", equipmentID).
		Bool("created", created).
		Str("username", caller.Username).
		Msg("equipment upserted")
	return stored, created, nil
}

func (s *RecordService) InsertInventory(ctx context.Context, caller domain.User, in ports.CreateInventoryInput) (*domain.InventoryRecord, error) {
	if err := s.checkDuplicate(ctx, domain.TableInventory, caller, in.IdempotencyKey); err != nil {
		return nil, err
	}

	rec := &domain.InventoryRecord{
		Location:     in.Location,
		MaterialType: in.MaterialType,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		DateStocked:  in.DateStocked,
		Owner:        caller.Username,
	}

	id, err := s.repo.InsertInventory(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert inventory: %w", err)
	}
	rec.ID = id

	s.log.Info().Str("id", id).Str("username", caller.Username).Msg("inventory record saved")
	return rec, nil
}

func (s *RecordService) ListInventory(ctx context.Context, caller domain.User) ([]*domain.InventoryRecord, error) {
	return s.repo.ListInventory(ctx, scopeOwner(caller))
}

func (s *RecordService) InsertWorker(ctx context.Context, caller domain.User, in ports.CreateWorkerInput) (*domain.WorkerRecord, error) {
	if err := s.checkDuplicate(ctx, domain.TableWorkers, caller, in.IdempotencyKey); err != nil {
		return nil, err
	}

	start, end, hours, err := shiftSpan(in.Start, in.End)
	if err != nil {
		return nil, err
	}

	rec := &domain.WorkerRecord{
		Name:         in.Name,
		Role:         in.Role,
		Shift:        in.Shift,
		StartTime:    start,
		EndTime:      end,
		WorkingHours: hours,
		WorkingPlace: in.WorkingPlace,
		HiredOn:      in.HiredOn,
		Owner:        caller.Username,
	}

	id, err := s.repo.InsertWorker(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert worker: %w", err)
	}
	rec.ID = id

	s.log.Info().Str("id", id).Str("username", caller.Username).Msg("worker record saved")
	return rec, nil
}

func (s *RecordService) ListWorkers(ctx context.Context, caller domain.User) ([]*domain.WorkerRecord, error) {
	return s.repo.ListWorkers(ctx, scopeOwner(caller))
}

func (s *RecordService) InsertEnvironment(ctx context.Context, caller domain.User, in ports.CreateEnvironmentInput) (*domain.EnvironmentRecord, error) {
	if err := s.checkDuplicate(ctx, domain.TableEnvironment, caller, in.IdempotencyKey); err != nil {
		return nil, err
	}

	rec := &domain.EnvironmentRecord{
		Timestamp:        time.Now().UTC(),
		NoiseDB:          in.NoiseDB,
		AirQuality:       in.AirQuality,
		WaterUsageL:      in.WaterUsageL,
		ComplianceStatus: in.ComplianceStatus,
		Notes:            in.Notes,
		Owner:            caller.Username,
	}

	id, err := s.repo.InsertEnvironment(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert environment: %w", err)
	}
	rec.ID = id

	s.log.Info().Str("id", id).Str("username", caller.Username).Msg("environment record saved")
	return rec, nil
}

func (s *RecordService) ListEnvironment(ctx context.Context, caller domain.User) ([]*domain.EnvironmentRecord, error) {
	return s.repo.ListEnvironment(ctx, scopeOwner(caller))
}

// Dashboard aggregates over the caller-visible rows only, so the same
// scoping rule governs summaries and raw listings.
func (s *RecordService) Dashboard(ctx context.Context, caller domain.User) (*ports.DashboardSummary, error) {
	owner := scopeOwner(caller)

	prod, err := s.repo.ListProduction(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	equip, err := s.repo.ListEquipment(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	inv, err := s.repo.ListInventory(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	env, err := s.repo.ListEnvironment(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	summary := &ports.DashboardSummary{
		ProductionCount: len(prod),
		EquipmentTotal:  len(equip),
	}
	for _, r := range inv {
		summary.TotalStockpile += r.Quantity
	}
	for _, r := range equip {
		if r.Status == domain.EquipmentRunning {
			summary.EquipmentRunning++
		}
	}
	if len(env) > 0 {
		var total float64
		for _, r := range env {
			total += r.NoiseDB
		}
		avg := total / float64(len(env))
		summary.AvgNoiseDB = &avg
	}

	return summary, nil
}

// buildEquipmentRecord converts the 12-hour form inputs and assembles a
// record ready for persistence.
func buildEquipmentRecord(equipmentType, equipmentID string, status domain.EquipmentStatus, start, end ports.ClockInput, tons float64, caller domain.User) (*domain.EquipmentRecord, error) {
	start24, end24, hours, err := shiftSpan(start, end)
	if err != nil {
		return nil, err
	}

	return &domain.EquipmentRecord{
		EquipmentType:  equipmentType,
		EquipmentID:    equipmentID,
		Status:         status,
		StartTime:      start24,
		EndTime:        end24,
		RunningTime:    hours,
		ProductionTons: tons,
		Owner:          caller.Username,
		LastUpdated:    time.Now().UTC(),
	}, nil
}

// shiftSpan converts two 12-hour clock inputs to 24-hour strings plus the
// elapsed hours between them.
func shiftSpan(start, end ports.ClockInput) (string, string, float64, error) {
	start24, err := domain.ConvertTo24h(start.Hour, start.Minute, start.Meridiem)
	if err != nil {
		return "", "", 0, err
	}
	end24, err := domain.ConvertTo24h(end.Hour, end.Minute, end.Meridiem)
	if err != nil {
		return "", "", 0, err
	}
	return start24, end24, domain.ElapsedHours(start24, end24), nil
}
