package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

// ExportService flattens the caller-visible rows of one table into a
// spreadsheet artifact. Reads go through the record service so exports obey
// the same owner scoping as listings.
type ExportService struct {
	records ports.RecordService
	writer  ports.SheetWriter
	log     zerolog.Logger
}

func NewExportService(records ports.RecordService, writer ports.SheetWriter, log zerolog.Logger) *ExportService {
	return &ExportService{records: records, writer: writer, log: log}
}

func (s *ExportService) Export(ctx context.Context, caller domain.User, table domain.Table) (string, error) {
	headers, rows, err := s.tabulate(ctx, caller, table)
	if err != nil {
		return "", err
	}

	path, err := s.writer.Write(string(table), headers, rows)
	if err != nil {
		return "", fmt.Errorf("export %s: %w", table, err)
	}

	s.log.Info().Str("table", string(table)).Str("path", path).Int("rows", len(rows)).Msg("export written")
	return path, nil
}

func (s *ExportService) tabulate(ctx context.Context, caller domain.User, table domain.Table) ([]string, [][]any, error) {
	switch table {
	case domain.TableProduction:
		recs, err := s.records.ListProduction(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]any, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []any{r.ID, r.Timestamp.Format(time.RFC3339), r.HourlyTons, r.DailyTons, r.BlockW, r.BlockH, r.BlockL, r.BlockVolume, r.Notes, r.Owner})
		}
		return []string{"id", "timestamp", "hourly_tons", "daily_tons", "block_w", "block_h", "block_l", "block_volume", "notes", "username"}, rows, nil

	case domain.TableEquipment:
		recs, err := s.records.ListEquipment(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]any, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []any{r.ID, r.EquipmentType, r.EquipmentID, string(r.Status), r.StartTime, r.EndTime, r.RunningTime, r.ProductionTons, r.Owner, r.LastUpdated.Format(time.RFC3339)})
		}
		return []string{"id", "equipment_type", "equipment_id", "status", "start_time", "end_time", "running_time", "production_tons", "username", "last_updated"}, rows, nil

	case domain.TableInventory:
		recs, err := s.records.ListInventory(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]any, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []any{r.ID, r.Location, r.MaterialType, r.Quantity, r.Unit, r.DateStocked.Format("2006-01-02"), r.Owner})
		}
		return []string{"id", "location", "material_type", "quantity", "unit", "date_stocked", "username"}, rows, nil

	case domain.TableWorkers:
		recs, err := s.records.ListWorkers(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]any, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []any{r.ID, r.Name, r.Role, r.Shift, r.StartTime, r.EndTime, r.WorkingHours, r.WorkingPlace, r.HiredOn.Format("2006-01-02"), r.Owner})
		}
		return []string{"id", "name", "role", "shift", "start_time", "end_time", "working_hours", "working_place", "hired_on", "username"}, rows, nil

	case domain.TableEnvironment:
		recs, err := s.records.ListEnvironment(ctx, caller)
		if err != nil {
			return nil, nil, err
		}
		rows := make([][]any, 0, len(recs))
		for _, r := range recs {
			rows = append(rows, []any{r.ID, r.Timestamp.Format(time.RFC3339), r.NoiseDB, string(r.AirQuality), r.WaterUsageL, string(r.ComplianceStatus), r.Notes, r.Owner})
		}
		return []string{"id", "timestamp", "noise_db", "air_quality", "water_usage_l", "compliance_status", "notes", "username"}, rows, nil
	}

	return nil, nil, fmt.Errorf("%w: unknown table %q", domain.ErrInvalidInput, table)
}
