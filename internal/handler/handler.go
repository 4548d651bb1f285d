package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/imadegun/prod-tracking-app/internal/model"
)

// Context keys populated by the auth middleware. Every handler reads the
// caller's company and role from here instead of ambient global state.
func companyID(c echo.Context) uint {
	id, _ := c.Get("company_id").(uint)
	return id
}

func userID(c echo.Context) uint {
	id, _ := c.Get("user_id").(uint)
	return id
}

func userRole(c echo.Context) string {
	role, _ := c.Get("user_role").(string)
	return role
}

func isManager(c echo.Context) bool {
	return model.IsManager(userRole(c))
}

func isSuperAdmin(c echo.Context) bool {
	return userRole(c) == model.RoleSuperAdmin
}

// parseID parses the :id path parameter
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
