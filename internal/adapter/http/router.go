package http

import (
	"time"

	"lombard-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// Handlers groups everything the router needs wired in.
type Handlers struct {
	Health     *Handler
	Collateral *CollateralHandler
	Loan       *LoanHandler
	Funding    *FundingHandler
	Repayment  *RepaymentHandler
	Fx         *FxHandler
}

// NewEcho builds the server with all routes and middleware registered.
// Mutating routes sit behind the redis idempotency guard; everything except
// /health requires identity headers.
func NewEcho(h Handlers, rdb *redis.Client, idempTTL time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	e.Use(middleware.TraceID(), echomw.Recover())

	e.GET("/health", h.Health.Health)

	api := e.Group("", middleware.RequireIdentity())
	mutating := api.Group("", middleware.Idempotency(rdb, idempTTL))

	mutating.POST("/assets/lock", h.Collateral.LockAsset)
	mutating.POST("/assets/:asset_id/unlock", h.Collateral.UnlockAsset)
	api.GET("/assets/credit", h.Collateral.AvailableCredit)

	mutating.POST("/loans", h.Loan.ApplyLoan)
	api.GET("/loans/:loan_id", h.Loan.GetLoan)
	mutating.POST("/loans/:loan_id/review", h.Loan.ReviewLoan)

	api.GET("/funding/opportunities", h.Funding.ListOpportunities)
	mutating.POST("/loans/:loan_id/invest", h.Funding.Invest)

	mutating.POST("/loans/:loan_id/repay", h.Repayment.Repay)
	mutating.POST("/loans/:loan_id/default", h.Repayment.SimulateDefault)

	api.GET("/fx/:base/:quote", h.Fx.GetRate)

	return e
}
