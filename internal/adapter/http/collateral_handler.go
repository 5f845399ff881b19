package http

import (
	"net/http"

	"lombard-backend/internal/adapter/middleware"
	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/usecase/collateral"

	"github.com/labstack/echo/v4"
)

type CollateralHandler struct{ uc *collateral.Usecase }

func NewCollateralHandler(uc *collateral.Usecase) *CollateralHandler {
	return &CollateralHandler{uc: uc}
}

type lockAssetReq struct {
	AssetID       string  `json:"asset_id"       validate:"required,hex32"`
	DeclaredValue float64 `json:"declared_value" validate:"required,gt=0,dec2"`
	Currency      string  `json:"currency"       validate:"omitempty,len=3"`
	AssetClass    string  `json:"asset_class"    validate:"required,assetclass"`
}

func (h *CollateralHandler) LockAsset(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "identity required"})
	}
	var req lockAssetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	dto, err := h.uc.Lock(c.Request().Context(), collateral.LockInput{
		OwnerID:       ident.UserID,
		AssetID:       req.AssetID,
		DeclaredValue: req.DeclaredValue,
		Currency:      currency,
		Class:         asset.Class(req.AssetClass),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *CollateralHandler) UnlockAsset(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "identity required"})
	}
	assetID := c.Param("asset_id")
	if !reHex32.MatchString(assetID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid asset_id"})
	}
	if err := h.uc.Unlock(c.Request().Context(), ident.UserID, assetID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CollateralHandler) AvailableCredit(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "identity required"})
	}
	available, err := h.uc.AvailableCredit(c.Request().Context(), ident.UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]float64{"available_credit": available})
}
