package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestExcelWriter_WritesNamedWorkbook(t *testing.T) {
	dir := t.TempDir()
	w, err := NewExcelWriter(dir)
	if err != nil {
		t.Fatalf("NewExcelWriter: %v", err)
	}
	w.now = func() time.Time {
		return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	}

	path, err := w.Write("production", []string{"id", "hourly_tons"}, [][]any{
		{"rec-1", 12.5},
		{"rec-2", 7.0},
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	if filepath.Base(path) != "production_20260314T092653Z.xlsx" {
		t.Fatalf("unexpected artifact name: %s", filepath.Base(path))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][1] != "hourly_tons" {
		t.Fatalf("unexpected header row: %v", rows[0])
	}
	if rows[1][0] != "rec-1" {
		t.Fatalf("unexpected first data row: %v", rows[1])
	}
}

func TestExcelWriter_EmptyTableStillProducesArtifact(t *testing.T) {
	w, err := NewExcelWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewExcelWriter: %v", err)
	}

	path, err := w.Write("workers", []string{"id", "name"}, nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected header only, got %d rows", len(rows))
	}
}
