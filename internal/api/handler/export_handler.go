package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/KamalGanth/quarry-ops/internal/api/metrics"
	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

// ExportHandler serves spreadsheet snapshots of the tables.
type ExportHandler struct {
	service ports.ExportService
}

func NewExportHandler(service ports.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles GET /v1/records/:table/export. The snapshot covers only the
// rows the caller is allowed to see and is returned as an xlsx download.
//
// @Summary      Export one table as a spreadsheet
// @Tags         records
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        table  path      string  true  "Table name"  Enums(production, equipment, inventory, workers, environment)
// @Success      200    {file}    binary
// @Failure      401    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/records/{table}/export [get]
func (h *ExportHandler) Export(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	table, err := domain.ParseTable(c.Param("table"))
	if err != nil {
		return err
	}

	path, err := h.service.Export(c.Request().Context(), caller, table)
	if err != nil {
		return err
	}

	metrics.ExportsTotal.WithLabelValues(string(table)).Inc()
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Attachment(path, filepath.Base(path))
}
