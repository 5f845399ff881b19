package investment

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Investment) error
	Save(ctx context.Context, inv *Investment) error
	// DB uniqueness on loan_id ensures at most one record per loan.
	GetByLoanID(ctx context.Context, loanID string) (*Investment, error)
	ListByInvestor(ctx context.Context, investorID string) ([]*Investment, error)
}
