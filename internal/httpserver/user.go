package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/logging"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/service"
)

type UserHandler struct {
	Svc *service.UserService
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	ctx := c.Request().Context()

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	total, users, err := h.Svc.List(ctx, page, size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "All users",
		"Total":   total,
		"data":    users,
	})
}

func (h *UserHandler) GetUserById(c echo.Context) error {
	user, err := h.Svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User found",
		"data":    user,
	})
}

func (h *UserHandler) UpdateUserById(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_update")

	var req service.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("user_update_error", "status", 400, "error", err)
		return service.BadRequest("Invalid request body")
	}

	user, err := h.Svc.UpdateByID(ctx, c.Param("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User updated",
		"data":    user,
	})
}

func (h *UserHandler) DeleteUserById(c echo.Context) error {
	user, err := h.Svc.DeleteByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User deleted",
		"data":    user,
	})
}

func (h *UserHandler) SearchUsers(c echo.Context) error {
	ctx := c.Request().Context()

	q := c.QueryParam("q")
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), 0)

	total, users, err := h.Svc.Search(ctx, q, page, size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Search results",
		"Total":   total,
		"data":    users,
	})
}
