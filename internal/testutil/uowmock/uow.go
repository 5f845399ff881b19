// Package uowmock is a function-backed double for uow.UnitOfWork. Use it when
// a test only cares about the transaction boundary itself (propagating
// storage errors, asserting a callback ran); memstore is the right tool when
// the test needs working repositories behind the boundary.
package uowmock

import (
	"context"
	"errors"

	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: function field not set")

// UoW dispatches each UnitOfWork method to its function field. Unset fields
// fail the call with errUnimplemented so a test cannot silently take a
// transaction path it never stubbed.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) WithWithinLoanTx(fn func(context.Context, string, func(uow.Repos, *loan.Loan) error) error) *UoW {
	m.WithinLoanTxFn = fn
	return m
}

// WithLockedLoan stubs WithinLoanTx to hand fn the given repos and loan, as
// if the row lock succeeded. The common case for state-machine guard tests.
func (m *UoW) WithLockedLoan(r uow.Repos, l *loan.Loan) *UoW {
	m.WithinLoanTxFn = func(_ context.Context, _ string, fn func(uow.Repos, *loan.Loan) error) error {
		return fn(r, l)
	}
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}
