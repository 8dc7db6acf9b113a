package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KamalGanth/quarry-ops/internal/api/metrics"
	"github.com/KamalGanth/quarry-ops/internal/core/ports"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=4,max=128"`
	Role     string `json:"role" validate:"required,oneof=admin user"`
}

// AdminHandler exposes the administrator-only surface: account management,
// per-user activity breakdowns and the full data reset.
type AdminHandler struct {
	auth  ports.AuthService
	admin ports.AdminService
}

func NewAdminHandler(auth ports.AuthService, admin ports.AdminService) *AdminHandler {
	return &AdminHandler{auth: auth, admin: admin}
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List accounts with per-table record counts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.UserBreakdown
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	rows, err := h.admin.ListUsersWithBreakdown(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// CreateUser handles POST /v1/admin/users. Unlike self-registration this
// route may mint admin accounts.
//
// @Summary      Create an account with an explicit role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users [post]
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// ClearRecords handles DELETE /v1/admin/records. All five operational tables
// are emptied in one shot; accounts survive.
//
// @Summary      Delete every operational record
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  acceptedResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/records [delete]
func (h *AdminHandler) ClearRecords(c echo.Context) error {
	if err := h.admin.ClearAllRecords(c.Request().Context()); err != nil {
		return err
	}
	metrics.DataClearsTotal.Inc()
	return c.JSON(http.StatusOK, acceptedResponse{Message: "all records cleared"})
}
