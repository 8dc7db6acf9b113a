// Package export writes tabular record dumps as .xlsx workbooks.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const timestampLayout = "20060102T150405Z"

// ExcelWriter implements ports.SheetWriter using excelize. Artifacts land in
// Dir as {prefix}_{UTC timestamp}.xlsx; nothing is ever overwritten or
// cleaned up here.
type ExcelWriter struct {
	dir string
	now func() time.Time
}

func NewExcelWriter(dir string) (*ExcelWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &ExcelWriter{dir: dir, now: time.Now}, nil
}

func (w *ExcelWriter) Write(prefix string, headers []string, rows [][]any) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", fmt.Errorf("write row %d: %w", i, err)
		}
	}

	name := fmt.Sprintf("%s_%s.xlsx", prefix, w.now().UTC().Format(timestampLayout))
	path := filepath.Join(w.dir, name)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}
