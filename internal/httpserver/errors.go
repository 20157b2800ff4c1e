package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yasirmansoori/Authentication-with-JWT/internal/service"
	"github.com/yasirmansoori/Authentication-with-JWT/internal/validation"
)

// ErrorHandler is the single responder every handler error funnels through.
// It maps error kind to status code and a user-facing message; nothing else
// ever reaches the client.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Something went wrong"

	var httpErr *echo.HTTPError

	switch {
	case errors.Is(err, validation.ErrValidation):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	case errors.Is(err, service.ErrBadRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.As(err, &httpErr):
		// echo routing errors (404/405) and anything raised with
		// echo.NewHTTPError.
		status = httpErr.Code
		message = fmt.Sprint(httpErr.Message)
	default:
		c.Logger().Errorf("unhandled error: %v", err)
	}

	if err := c.JSON(status, echo.Map{"message": message}); err != nil {
		c.Logger().Errorf("error response write failed: %v", err)
	}
}
