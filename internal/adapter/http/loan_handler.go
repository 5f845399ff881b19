package http

import (
	"net/http"

	"lombard-backend/internal/adapter/middleware"
	domain "lombard-backend/internal/domain/loan"
	"lombard-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type applyLoanReq struct {
	Amount       float64 `json:"amount"        validate:"required,gt=0,dec2"`
	TenureMonths int     `json:"tenure_months" validate:"required,gte=1,lte=360"`
	Purpose      string  `json:"purpose"       validate:"required,loanpurpose"`
}

func (h *LoanHandler) ApplyLoan(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "identity required"})
	}
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	result, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		BorrowerID:   ident.UserID,
		Amount:       req.Amount,
		TenureMonths: req.TenureMonths,
		Purpose:      domain.Purpose(req.Purpose),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type reviewLoanReq struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVE REJECT"`
	Reason   string `json:"reason"   validate:"omitempty,max=500"`
}

func (h *LoanHandler) ReviewLoan(c echo.Context) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "identity required"})
	}
	loanID := c.Param("loan_id")
	if !reHex32.MatchString(loanID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan_id"})
	}
	var req reviewLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Review(c.Request().Context(), loan.ReviewInput{
		LoanID:    loanID,
		ActorID:   ident.UserID,
		ActorRole: string(ident.Role),
		Decision:  loan.ReviewDecision(req.Decision),
		Reason:    req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
