package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KamalGanth/quarry-ops/internal/api/metrics"
	"github.com/KamalGanth/quarry-ops/internal/core/domain"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

// headerIdempotencyKey carries the optional client token that makes a form
// submission replay-safe.
const headerIdempotencyKey = "Idempotency-Key"

// RecordHandler handles HTTP requests for the five operational tables.
type RecordHandler struct {
	service ports.RecordService
}

func NewRecordHandler(service ports.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

func toClock(r clockRequest) ports.ClockInput {
	return ports.ClockInput{Hour: r.Hour, Minute: r.Minute, Meridiem: r.Meridiem}
}

// duplicateReply renders the idempotent-replay acknowledgement.
func duplicateReply(c echo.Context) error {
	metrics.SubmissionsDedupTotal.WithLabelValues("hit").Inc()
	return c.JSON(http.StatusOK, acceptedResponse{Message: "duplicate submission ignored"})
}

func recorded(table domain.Table) {
	metrics.SubmissionsDedupTotal.WithLabelValues("miss").Inc()
	metrics.RecordsCreatedTotal.WithLabelValues(string(table)).Inc()
}

// CreateProduction handles POST /v1/records/production.
//
// @Summary      Record a production entry
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productionRequest  true  "Production entry"
// @Success      201   {object}  domain.ProductionRecord
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/records/production [post]
func (h *RecordHandler) CreateProduction(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req productionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rec, err := h.service.InsertProduction(c.Request().Context(), caller, ports.CreateProductionInput{
		HourlyTons:     req.HourlyTons,
		DailyTons:      req.DailyTons,
		BlockW:         req.BlockW,
		BlockH:         req.BlockH,
		BlockL:         req.BlockL,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if errors.Is(err, domain.ErrDuplicateSubmission) {
		return duplicateReply(c)
	}
	if err != nil {
		return err
	}

	recorded(domain.TableProduction)
	return c.JSON(http.StatusCreated, rec)
}

// CreateEquipment handles POST /v1/records/equipment.
//
// @Summary      Record an equipment status entry
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      equipmentRequest  true  "Equipment entry"
// @Success      201   {object}  domain.EquipmentRecord
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/records/equipment [post]
func (h *RecordHandler) CreateEquipment(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req equipmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rec, err := h.service.InsertEquipment(c.Request().Context(), caller, ports.CreateEquipmentInput{
		EquipmentType:  req.EquipmentType,
		EquipmentID:    req.EquipmentID,
		Status:         domain.EquipmentStatus(req.Status),
		Start:          toClock(req.Start),
		End:            toClock(req.End),
		ProductionTons: req.ProductionTons,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if errors.Is(err, domain.ErrDuplicateSubmission) {
		return duplicateReply(c)
	}
	if err != nil {
		return err
	}

	recorded(domain.TableEquipment)
	return c.JSON(http.StatusCreated, rec)
}

// UpsertEquipment handles PUT /v1/records/equipment/:equipment_id — the
// update-if-exists-else-insert path keyed by the business key.
//
// @Summary      Upsert an equipment entry by its business key
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        equipment_id  path      string                  true  "Equipment business key (e.g. EX-7)"
// @Param        body          body      equipmentUpsertRequest  true  "Mutable equipment fields"
// @Success      200           {object}  domain.EquipmentRecord
// @Success      201           {object}  domain.EquipmentRecord
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      422           {object}  errorResponse
// @Router       /v1/records/equipment/{equipment_id} [put]
func (h *RecordHandler) UpsertEquipment(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req equipmentUpsertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rec, created, err := h.service.UpsertEquipment(c.Request().Context(), caller, c.Param("equipment_id"), ports.UpsertEquipmentInput{
		EquipmentType:  req.EquipmentType,
		Status:         domain.EquipmentStatus(req.Status),
		Start:          toClock(req.Start),
		End:            toClock(req.End),
		ProductionTons: req.ProductionTons,
	})
	if err != nil {
		return err
	}

	if created {
		metrics.EquipmentUpsertsTotal.WithLabelValues("created").Inc()
		return c.JSON(http.StatusCreated, rec)
	}
	metrics.EquipmentUpsertsTotal.WithLabelValues("updated").Inc()
	return c.JSON(http.StatusOK, rec)
}

// CreateInventory handles POST /v1/records/inventory.
//
// @Summary      Record an inventory entry
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      inventoryRequest  true  "Inventory entry"
// @Success      201   {object}  domain.InventoryRecord
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/records/inventory [post]
func (h *RecordHandler) CreateInventory(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req inventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	// already validated by the datetime tag
	stocked, _ := time.Parse("2006-01-02", req.DateStocked)

	rec, err := h.service.InsertInventory(c.Request().Context(), caller, ports.CreateInventoryInput{
		Location:       req.Location,
		MaterialType:   req.MaterialType,
		Quantity:       req.Quantity,
		Unit:           req.Unit,
		DateStocked:    stocked,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if errors.Is(err, domain.ErrDuplicateSubmission) {
		return duplicateReply(c)
	}
	if err != nil {
		return err
	}

	recorded(domain.TableInventory)
	return c.JSON(http.StatusCreated, rec)
}

// CreateWorker handles POST /v1/records/workers.
//
// @Summary      Record a workforce shift entry
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      workerRequest  true  "Worker entry"
// @Success      201   {object}  domain.WorkerRecord
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/records/workers [post]
func (h *RecordHandler) CreateWorker(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req workerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	hired, _ := time.Parse("2006-01-02", req.HiredOn)

	rec, err := h.service.InsertWorker(c.Request().Context(), caller, ports.CreateWorkerInput{
		Name:           req.Name,
		Role:           req.Role,
		Shift:          req.Shift,
		Start:          toClock(req.Start),
		End:            toClock(req.End),
		WorkingPlace:   req.WorkingPlace,
		HiredOn:        hired,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if errors.Is(err, domain.ErrDuplicateSubmission) {
		return duplicateReply(c)
	}
	if err != nil {
		return err
	}

	recorded(domain.TableWorkers)
	return c.JSON(http.StatusCreated, rec)
}

// CreateEnvironment handles POST /v1/records/environment.
//
// @Summary      Record an environmental reading
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      environmentRequest  true  "Environment entry"
// @Success      201   {object}  domain.EnvironmentRecord
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/records/environment [post]
func (h *RecordHandler) CreateEnvironment(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req environmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rec, err := h.service.InsertEnvironment(c.Request().Context(), caller, ports.CreateEnvironmentInput{
		NoiseDB:          req.NoiseDB,
		AirQuality:       domain.AirQuality(req.AirQuality),
		WaterUsageL:      req.WaterUsageL,
		ComplianceStatus: domain.ComplianceStatus(req.ComplianceStatus),
		Notes:            req.Notes,
		IdempotencyKey:   c.Request().Header.Get(headerIdempotencyKey),
	})
	if errors.Is(err, domain.ErrDuplicateSubmission) {
		return duplicateReply(c)
	}
	if err != nil {
		return err
	}

	recorded(domain.TableEnvironment)
	return c.JSON(http.StatusCreated, rec)
}

// List handles GET /v1/records/:table — rows the caller may see, newest
// first. Dispatch runs through the table enum; an unknown name never reaches
// storage.
//
// @Summary      List records of one table
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        table  path      string  true  "Table name"  Enums(production, equipment, inventory, workers, environment)
// @Success      200    {array}   any
// @Failure      401    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/records/{table} [get]
func (h *RecordHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	table, err := domain.ParseTable(c.Param("table"))
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	switch table {
	case domain.TableProduction:
		rows, err := h.service.ListProduction(ctx, caller)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rows)
	case domain.TableEquipment:
		rows, err := h.service.ListEquipment(ctx, caller)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rows)
	case domain.TableInventory:
		rows, err := h.service.ListInventory(ctx, caller)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rows)
	case domain.TableWorkers:
		rows, err := h.service.ListWorkers(ctx, caller)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rows)
	default:
		rows, err := h.service.ListEnvironment(ctx, caller)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rows)
	}
}

// Dashboard handles GET /v1/dashboard.
//
// @Summary      Summary metrics over the caller-visible rows
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *RecordHandler) Dashboard(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	sum, err := h.service.Dashboard(c.Request().Context(), caller)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalStockpile:   sum.TotalStockpile,
		EquipmentRunning: sum.EquipmentRunning,
		EquipmentTotal:   sum.EquipmentTotal,
		ProductionCount:  sum.ProductionCount,
		AvgNoiseDB:       sum.AvgNoiseDB,
	})
}
