package http

import (
	"net/http"
	"strconv"

	"lombard-backend/internal/adapter/middleware"
	"lombard-backend/internal/usecase/funding"

	"github.com/labstack/echo/v4"
)

type FundingHandler struct{ uc *funding.Usecase }

func NewFundingHandler(uc *funding.Usecase) *FundingHandler {
	return &FundingHandler{uc: uc}
}

func (h *FundingHandler) ListOpportunities(c echo.Context) error {
	f := funding.Filters{
		RiskBand: c.QueryParam("risk_band"),
		SortBy:   funding.SortKey(c.QueryParam("sort_by")),
	}
	if v := c.QueryParam("min_amount"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_amount"})
		}
		f.MinAmount = n
	}
	if v := c.QueryParam("max_amount"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid max_amount"})
		}
		f.MaxAmount = n
	}
	if v := c.QueryParam("min_trust_score"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid min_trust_score"})
		}
		f.MinTrustScore = n
	}

	ops, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"opportunities": ops, "count": len(ops)})
}

func (h *FundingHandler) Invest(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "identity required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	result, err := h.uc.Invest(c.Request().Context(), ident.UserID, loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
