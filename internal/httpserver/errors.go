package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stridewear/storefront/internal/service"
)

// toHTTPError translates the service error taxonomy into a status +
// message pair. Anything unrecognized is a 500 with a generic body so
// storage errors never leak to clients.
func toHTTPError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidCredential):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func isClientError(err error) bool {
	return errors.Is(err, service.ErrValidation) ||
		errors.Is(err, service.ErrInvalidCredential) ||
		errors.Is(err, service.ErrNotFound) ||
		errors.Is(err, service.ErrConflict) ||
		errors.Is(err, service.ErrInvalidTransition)
}
