package uow

import (
	"context"

	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/investment"
	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/user"
)

type Repos struct {
	Users       user.Repository
	Assets      asset.AssetRepository
	Collateral  asset.CollateralRepository
	Loans       loan.Repository
	TrustScores trust.Repository
	Investments investment.Repository
}

// UnitOfWork scopes a set of repository calls to one transaction. Every
// mutating core operation runs through it; a returned error rolls the whole
// unit back with no partial state.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
