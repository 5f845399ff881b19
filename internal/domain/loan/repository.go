package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// Row-locked read; must run inside a transaction.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// Loans listed for funding with no investor bound, newest first.
	ListOpenForFunding(ctx context.Context) ([]*Loan, error)
	ListByBorrower(ctx context.Context, borrowerID string) ([]*Loan, error)
	ListActiveByBorrower(ctx context.Context, borrowerID string) ([]*Loan, error)
}
