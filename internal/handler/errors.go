package handler

import (
	"errors"
	"net/http"

	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

// httpError maps service sentinels to HTTP statuses. Anything unrecognized
// surfaces as a generic 500 so persistence failures are never swallowed.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrProductNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidQuantity):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrIntegrityViolation):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCommitmentRedeemed):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCommitmentExpired):
		return echo.NewHTTPError(http.StatusGone, err.Error())
	case errors.Is(err, service.ErrInsufficientBalance):
		return echo.NewHTTPError(http.StatusPaymentRequired, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
