package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

// stubRecordRepo is an in-memory ports.RecordRepository. Lists return
// most-recent-first like the real repository.
type stubRecordRepo struct {
	nextID      int
	production  []*domain.ProductionRecord
	equipment   []*domain.EquipmentRecord
	inventory   []*domain.InventoryRecord
	workers     []*domain.WorkerRecord
	environment []*domain.EnvironmentRecord
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{}
}

func (r *stubRecordRepo) id() string {
	r.nextID++
	return fmt.Sprintf("rec-%d", r.nextID)
}

func (r *stubRecordRepo) InsertProduction(_ context.Context, rec *domain.ProductionRecord) (string, error) {
	rec.ID = r.id()
	r.production = append(r.production, rec)
	return rec.ID, nil
}

func (r *stubRecordRepo) ListProduction(_ context.Context, owner string) ([]*domain.ProductionRecord, error) {
	var out []*domain.ProductionRecord
	for i := len(r.production) - 1; i >= 0; i-- {
		if owner == "" || r.production[i].Owner == owner {
			out = append(out, r.production[i])
		}
	}
	return out, nil
}

func (r *stubRecordRepo) InsertEquipment(_ context.Context, rec *domain.EquipmentRecord) (string, error) {
	rec.ID = r.id()
	r.equipment = append(r.equipment, rec)
	return rec.ID, nil
}

func (r *stubRecordRepo) ListEquipment(_ context.Context, owner string) ([]*domain.EquipmentRecord, error) {
	var out []*domain.EquipmentRecord
	for i := len(r.equipment) - 1; i >= 0; i-- {
		if owner == "" || r.equipment[i].Owner == owner {
			out = append(out, r.equipment[i])
		}
	}
	return out, nil
}

// UpsertEquipmentByBusinessKey mirrors the real repository: only the mutable
// fields are overwritten on a match, and the row is returned as stored.
func (r *stubRecordRepo) UpsertEquipmentByBusinessKey(_ context.Context, rec *domain.EquipmentRecord) (*domain.EquipmentRecord, bool, error) {
	for i := len(r.equipment) - 1; i >= 0; i-- {
		existing := r.equipment[i]
		if existing.EquipmentID == rec.EquipmentID {
			existing.Status = rec.Status
			existing.StartTime = rec.StartTime
			existing.EndTime = rec.EndTime
			existing.RunningTime = rec.RunningTime
			existing.ProductionTons = rec.ProductionTons
			existing.LastUpdated = rec.LastUpdated
			stored := *existing
			return &stored, false, nil
		}
	}
	rec.ID = r.id()
	r.equipment = append(r.equipment, rec)
	stored := *rec
	return &stored, true, nil
}

func (r *stubRecordRepo) InsertInventory(_ context.Context, rec *domain.InventoryRecord) (string, error) {
	rec.ID = r.id()
	r.inventory = append(r.inventory, rec)
	return rec.ID, nil
}

func (r *stubRecordRepo) ListInventory(_ context.Context, owner string) ([]*domain.InventoryRecord, error) {
	var out []*domain.InventoryRecord
	for i := len(r.inventory) - 1; i >= 0; i-- {
		if owner == "" || r.inventory[i].Owner == owner {
			out = append(out, r.inventory[i])
		}
	}
	return out, nil
}

func (r *stubRecordRepo) InsertWorker(_ context.Context, rec *domain.WorkerRecord) (string, error) {
	rec.ID = r.id()
	r.workers = append(r.workers, rec)
	return rec.ID, nil
}

func (r *stubRecordRepo) ListWorkers(_ context.Context, owner string) ([]*domain.WorkerRecord, error) {
	var out []*domain.WorkerRecord
	for i := len(r.workers) - 1; i >= 0; i-- {
		if owner == "" || r.workers[i].Owner == owner {
			out = append(out, r.workers[i])
		}
	}
	return out, nil
}

func (r *stubRecordRepo) InsertEnvironment(_ context.Context, rec *domain.EnvironmentRecord) (string, error) {
	rec.ID = r.id()
	r.environment = append(r.environment, rec)
	return rec.ID, nil
}

func (r *stubRecordRepo) ListEnvironment(_ context.Context, owner string) ([]*domain.EnvironmentRecord, error) {
	var out []*domain.EnvironmentRecord
	for i := len(r.environment) - 1; i >= 0; i-- {
		if owner == "" || r.environment[i].Owner == owner {
			out = append(out, r.environment[i])
		}
	}
	return out, nil
}

func (r *stubRecordRepo) CountByOwner(_ context.Context, table domain.Table, owner string) (int64, error) {
	var n int64
	switch table {
	case domain.TableProduction:
		for _, rec := range r.production {
			if rec.Owner == owner {
				n++
			}
		}
	case domain.TableEquipment:
		for _, rec := range r.equipment {
			if rec.Owner == owner {
				n++
			}
		}
	case domain.TableInventory:
		for _, rec := range r.inventory {
			if rec.Owner == owner {
				n++
			}
		}
	case domain.TableWorkers:
		for _, rec := range r.workers {
			if rec.Owner == owner {
				n++
			}
		}
	case domain.TableEnvironment:
		for _, rec := range r.environment {
			if rec.Owner == owner {
				n++
			}
		}
	}
	return n, nil
}

func (r *stubRecordRepo) ClearAll(_ context.Context) error {
	r.production = nil
	r.equipment = nil
	r.inventory = nil
	r.workers = nil
	r.environment = nil
	return nil
}

// stubDedup is an in-memory DedupChecker.
type stubDedup struct {
	seen map[string]bool
	err  error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, key string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.seen[key], nil
}

func (d *stubDedup) Mark(_ context.Context, key string) error {
	d.seen[key] = true
	return nil
}

var (
	alice = domain.User{ID: "1", Username: "alice", Role: domain.RoleUser}
	bob   = domain.User{ID: "2", Username: "bob", Role: domain.RoleUser}
	root  = domain.User{ID: "3", Username: "Admin", Role: domain.RoleAdmin}
)

func newTestRecordService(repo *stubRecordRepo, dedup *stubDedup) *RecordService {
	return NewRecordService(repo, dedup, zerolog.Nop())
}

func TestRecordService_InsertProduction_ComputesVolumeAndOwner(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())

	rec, err := svc.InsertProduction(context.Background(), alice, ports.CreateProductionInput{
		HourlyTons: 12.5,
		DailyTons:  100,
		BlockW:     2.0,
		BlockH:     1.5,
		BlockL:     3.0,
		Notes:      "north face",
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if rec.BlockVolume != 9.0 {
		t.Fatalf("expected volume 9.0, got %v", rec.BlockVolume)
	}
	if rec.Owner != "alice" {
		t.Fatalf("expected owner alice, got %s", rec.Owner)
	}
	if rec.ID == "" || rec.Timestamp.IsZero() {
		t.Fatalf("identity and timestamp must be server-assigned: %+v", rec)
	}
}

func TestRecordService_ListScoping(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())
	ctx := context.Background()

	_, _ = svc.InsertInventory(ctx, alice, ports.CreateInventoryInput{Location: "Yard A", Quantity: 10})
	_, _ = svc.InsertInventory(ctx, bob, ports.CreateInventoryInput{Location: "Yard B", Quantity: 20})
	_, _ = svc.InsertInventory(ctx, root, ports.CreateInventoryInput{Location: "Yard C", Quantity: 30})

	own, err := svc.ListInventory(ctx, alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 row for alice, got %d", len(own))
	}
	for _, r := range own {
		if r.Owner != "alice" {
			t.Fatalf("leaked foreign row to non-admin: %+v", r)
		}
	}

	all, err := svc.ListInventory(ctx, root)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected admin to see 3 rows, got %d", len(all))
	}
}

func TestRecordService_ListOrder_MostRecentFirst(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())
	ctx := context.Background()

	first, _ := svc.InsertProduction(ctx, alice, ports.CreateProductionInput{HourlyTons: 1})
	second, _ := svc.InsertProduction(ctx, alice, ports.CreateProductionInput{HourlyTons: 2})

	rows, err := svc.ListProduction(ctx, alice)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Fatalf("expected most-recent-first order, got %s then %s", rows[0].ID, rows[1].ID)
	}
}

func TestRecordService_InsertEquipment_ComputesRunningTime(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())

	rec, err := svc.InsertEquipment(context.Background(), alice, ports.CreateEquipmentInput{
		EquipmentType:  "Excavator",
		EquipmentID:    "EX-1",
		Status:         domain.EquipmentRunning,
		Start:          ports.ClockInput{Hour: 9, Minute: 0, Meridiem: "AM"},
		End:            ports.ClockInput{Hour: 5, Minute: 30, Meridiem: "PM"},
		ProductionTons: 42,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if rec.StartTime != "09:00:00" || rec.EndTime != "17:30:00" {
		t.Fatalf("bad clock conversion: %s - %s", rec.StartTime, rec.EndTime)
	}
	if rec.RunningTime != 8.5 {
		t.Fatalf("expected 8.5 running hours, got %v", rec.RunningTime)
	}
	if rec.LastUpdated.IsZero() {
		t.Fatalf("last_updated must be stamped")
	}
}

func TestRecordService_InsertEquipment_RejectsBadClock(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())

	_, err := svc.InsertEquipment(context.Background(), alice, ports.CreateEquipmentInput{
		EquipmentID: "EX-1",
		Start:       ports.ClockInput{Hour: 13, Minute: 0, Meridiem: "AM"},
		End:         ports.ClockInput{Hour: 5, Minute: 0, Meridiem: "PM"},
	})
	if err == nil {
		t.Fatalf("expected validation error for hour 13")
	}
	if len(repo.equipment) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestRecordService_InsertWorker_ClampsOvernightShift(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())

	rec, err := svc.InsertWorker(context.Background(), alice, ports.CreateWorkerInput{
		Name:  "Jim",
		Shift: "Shift 3",
		Start: ports.ClockInput{Hour: 2, Minute: 0, Meridiem: "PM"},
		End:   ports.ClockInput{Hour: 9, Minute: 0, Meridiem: "AM"},
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if rec.WorkingHours != 0.0 {
		t.Fatalf("end before start must clamp to 0.0, got %v", rec.WorkingHours)
	}
}

func TestRecordService_UpsertEquipment_SecondCallMutatesSameRow(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())
	ctx := context.Background()

	first, created, err := svc.UpsertEquipment(ctx, alice, "EX-7", ports.UpsertEquipmentInput{
		EquipmentType:  "Dumper",
		Status:         domain.EquipmentIdle,
		Start:          ports.ClockInput{Hour: 8, Minute: 0, Meridiem: "AM"},
		End:            ports.ClockInput{Hour: 12, Minute: 0, Meridiem: "PM"},
		ProductionTons: 10,
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if !created {
		t.Fatalf("first upsert must create")
	}

	second, created, err := svc.UpsertEquipment(ctx, alice, "EX-7", ports.UpsertEquipmentInput{
		Status:         domain.EquipmentRunning,
		Start:          ports.ClockInput{Hour: 1, Minute: 0, Meridiem: "PM"},
		End:            ports.ClockInput{Hour: 6, Minute: 0, Meridiem: "PM"},
		ProductionTons: 55,
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if created {
		t.Fatalf("second upsert must update, not create")
	}
	if second.ID != first.ID {
		t.Fatalf("identity changed across upsert: %s vs %s", first.ID, second.ID)
	}
	if len(repo.equipment) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(repo.equipment))
	}
	stored := repo.equipment[0]
	if stored.Status != domain.EquipmentRunning || stored.ProductionTons != 55 || stored.RunningTime != 5.0 {
		t.Fatalf("second call's values must win: %+v", stored)
	}
}

func TestRecordService_UpsertEquipment_UpdateReportsStoredRow(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())
	ctx := context.Background()

	_, _, err := svc.UpsertEquipment(ctx, alice, "EX-7", ports.UpsertEquipmentInput{
		EquipmentType: "Excavator",
		Status:        domain.EquipmentIdle,
		Start:         ports.ClockInput{Hour: 8, Minute: 0, Meridiem: "AM"},
		End:           ports.ClockInput{Hour: 12, Minute: 0, Meridiem: "PM"},
	})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// bob updates the same key without an equipment type
	rec, created, err := svc.UpsertEquipment(ctx, bob, "EX-7", ports.UpsertEquipmentInput{
		Status:         domain.EquipmentRunning,
		Start:          ports.ClockInput{Hour: 1, Minute: 0, Meridiem: "PM"},
		End:            ports.ClockInput{Hour: 6, Minute: 0, Meridiem: "PM"},
		ProductionTons: 20,
	})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if created {
		t.Fatalf("second upsert must update, not create")
	}

	stored := repo.equipment[0]
	if rec.Owner != stored.Owner || rec.EquipmentType != stored.EquipmentType {
		t.Fatalf("response must match the stored row: got owner=%q type=%q, stored owner=%q type=%q",
			rec.Owner, rec.EquipmentType, stored.Owner, stored.EquipmentType)
	}
	if rec.Owner != "alice" || rec.EquipmentType != "Excavator" {
		t.Fatalf("update must keep the original owner and type: %+v", rec)
	}
	if rec.Status != domain.EquipmentRunning || rec.ProductionTons != 20 {
		t.Fatalf("update's mutable values must be reported: %+v", rec)
	}
}

func TestRecordService_UpsertEquipment_RequiresBusinessKey(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())

	if _, _, err := svc.UpsertEquipment(context.Background(), alice, "", ports.UpsertEquipmentInput{}); err == nil {
		t.Fatalf("expected error for empty equipment id")
	}
}

func TestRecordService_DuplicateSubmissionSuppressed(t *testing.T) {
	repo := newStubRecordRepo()
	dedup := newStubDedup()
	svc := newTestRecordService(repo, dedup)
	ctx := context.Background()

	in := ports.CreateEnvironmentInput{NoiseDB: 70, AirQuality: domain.AirGood, ComplianceStatus: domain.CompliancePass, IdempotencyKey: "form-123"}
	if _, err := svc.InsertEnvironment(ctx, alice, in); err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if _, err := svc.InsertEnvironment(ctx, alice, in); err != domain.ErrDuplicateSubmission {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}
	if len(repo.environment) != 1 {
		t.Fatalf("duplicate must not persist a second row, got %d", len(repo.environment))
	}
}

func TestRecordService_DedupFailureDoesNotBlockWrites(t *testing.T) {
	repo := newStubRecordRepo()
	dedup := newStubDedup()
	dedup.err = fmt.Errorf("redis down")
	svc := newTestRecordService(repo, dedup)

	if _, err := svc.InsertProduction(context.Background(), alice, ports.CreateProductionInput{IdempotencyKey: "k"}); err != nil {
		t.Fatalf("dedup outage must not block writes: %v", err)
	}
	if len(repo.production) != 1 {
		t.Fatalf("record must be persisted despite dedup outage")
	}
}

func TestRecordService_Dashboard(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())
	ctx := context.Background()

	_, _ = svc.InsertInventory(ctx, alice, ports.CreateInventoryInput{Quantity: 10})
	_, _ = svc.InsertInventory(ctx, alice, ports.CreateInventoryInput{Quantity: 5.5})
	_, _ = svc.InsertEquipment(ctx, alice, ports.CreateEquipmentInput{
		EquipmentID: "EX-1", Status: domain.EquipmentRunning,
		Start: ports.ClockInput{Hour: 8, Minute: 0, Meridiem: "AM"},
		End:   ports.ClockInput{Hour: 4, Minute: 0, Meridiem: "PM"},
	})
	_, _ = svc.InsertEquipment(ctx, alice, ports.CreateEquipmentInput{
		EquipmentID: "EX-2", Status: domain.EquipmentIdle,
		Start: ports.ClockInput{Hour: 8, Minute: 0, Meridiem: "AM"},
		End:   ports.ClockInput{Hour: 4, Minute: 0, Meridiem: "PM"},
	})
	_, _ = svc.InsertEnvironment(ctx, alice, ports.CreateEnvironmentInput{NoiseDB: 60})
	_, _ = svc.InsertEnvironment(ctx, alice, ports.CreateEnvironmentInput{NoiseDB: 80})
	_, _ = svc.InsertProduction(ctx, alice, ports.CreateProductionInput{HourlyTons: 3})

	// bob's rows must not show up in alice's dashboard
	_, _ = svc.InsertInventory(ctx, bob, ports.CreateInventoryInput{Quantity: 999})

	sum, err := svc.Dashboard(ctx, alice)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if sum.TotalStockpile != 15.5 {
		t.Fatalf("expected stockpile 15.5, got %v", sum.TotalStockpile)
	}
	if sum.EquipmentRunning != 1 || sum.EquipmentTotal != 2 {
		t.Fatalf("unexpected equipment counts: %+v", sum)
	}
	if sum.ProductionCount != 1 {
		t.Fatalf("expected 1 production record, got %d", sum.ProductionCount)
	}
	if sum.AvgNoiseDB == nil || *sum.AvgNoiseDB != 70 {
		t.Fatalf("expected avg noise 70, got %v", sum.AvgNoiseDB)
	}
}

func TestRecordService_Dashboard_NoEnvironmentRows(t *testing.T) {
	repo := newStubRecordRepo()
	svc := newTestRecordService(repo, newStubDedup())

	sum, err := svc.Dashboard(context.Background(), alice)
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if sum.AvgNoiseDB != nil {
		t.Fatalf("expected nil average noise with no rows, got %v", *sum.AvgNoiseDB)
	}
}
