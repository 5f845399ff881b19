package http

import (
	"errors"
	"net/http"

	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/investment"
	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// writeError maps domain sentinels to HTTP statuses. Core errors reach the
// client verbatim; anything unmapped is a 500 with a generic body.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, asset.ErrNotFound),
		errors.Is(err, loan.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, trust.ErrNotFound),
		errors.Is(err, investment.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})

	case errors.Is(err, user.ErrForbidden),
		errors.Is(err, user.ErrNotInvestorRole):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loan.ErrInvalidState),
		errors.Is(err, loan.ErrNotAvailable),
		errors.Is(err, loan.ErrAlreadyFunded),
		errors.Is(err, asset.ErrAlreadyLocked),
		errors.Is(err, asset.ErrNotLocked),
		errors.Is(err, asset.ErrHasActiveLoan):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})

	case errors.Is(err, asset.ErrInsufficientCredit),
		errors.Is(err, user.ErrInsufficientBalance):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})

	case errors.Is(err, loan.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
