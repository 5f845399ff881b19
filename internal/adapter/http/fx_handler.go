package http

import (
	"net/http"
	"regexp"

	"lombard-backend/internal/usecase/fx"

	"github.com/labstack/echo/v4"
)

var reCurrency = regexp.MustCompile(`^[A-Za-z]{3}$`)

type FxHandler struct{ cache *fx.Cache }

func NewFxHandler(cache *fx.Cache) *FxHandler {
	return &FxHandler{cache: cache}
}

func (h *FxHandler) GetRate(c echo.Context) error {
	base := c.Param("base")
	quote := c.Param("quote")
	if !reCurrency.MatchString(base) || !reCurrency.MatchString(quote) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "currency codes must be 3 letters"})
	}

	rate, err := h.cache.Rate(c.Request().Context(), base, quote)
	if err != nil {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "rate unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"base":  base,
		"quote": quote,
		"rate":  rate,
	})
}
