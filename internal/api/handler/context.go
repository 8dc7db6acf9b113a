package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/KamalGanth/quarry-ops/internal/core/domain"
)

// ctxCaller extracts the authenticated caller injected by the Auth
// middleware. Every domain-store call requires this context; a request that
// reaches a handler without it is rejected outright.
func ctxCaller(c echo.Context) (domain.User, error) {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	if username == "" || role == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return domain.User{Username: username, Role: role}, nil
}
