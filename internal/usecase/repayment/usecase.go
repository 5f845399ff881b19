package repayment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lombard-backend/internal/adapter/notification"
	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/investment"
	domain "lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/uow"
	"lombard-backend/internal/domain/user"
	loanuc "lombard-backend/internal/usecase/loan"
	"lombard-backend/pkg/id"
	"lombard-backend/pkg/money"

	"gorm.io/gorm"
)

// liquidationHaircutPct is the fixed execution-loss percentage applied to
// collateral value on forced liquidation.
const liquidationHaircutPct = 8

// Rescorer recalculates a borrower's trust score after terminal loan events.
type Rescorer interface {
	Recalculate(ctx context.Context, borrowerID string) error
}

type Usecase struct {
	uw       uow.UnitOfWork
	sink     notification.Sink
	rescorer Rescorer
	now      func() time.Time
}

func NewUsecase(uw uow.UnitOfWork, sink notification.Sink, rescorer Rescorer) *Usecase {
	return &Usecase{
		uw: uw, sink: sink, rescorer: rescorer,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Repay applies a borrower repayment. Reaching the principal settles the loan:
// the investor is paid principal plus simple interest over the full tenure,
// the settlement record is written and the collateral reservation is released,
// all in the same transaction as the state change.
func (u *Usecase) Repay(ctx context.Context, in RepayInput) (*RepayResult, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	var result *RepayResult
	err := u.uw.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.BorrowerID != in.ActorID {
			return user.ErrForbidden
		}
		if l.State != domain.StateActive {
			return domain.ErrInvalidState
		}

		l.TotalRepaid = money.Round2(l.TotalRepaid + in.Amount)
		fullyRepaid := l.TotalRepaid >= l.Principal

		if fullyRepaid {
			now := u.now()
			l.State = domain.StateRepaid
			l.StateUpdatedAt = now

			// Simple-interest payout over the full tenure, regardless of
			// elapsed time. Early full repayment still pays full interest.
			payout := money.Round2(l.Principal + money.SimpleInterest(l.Principal, l.Rate, l.TenureMonths))

			investor, err := r.Users.GetByUserIDForUpdate(ctx, *l.InvestorID)
			if err != nil {
				return err
			}
			investor.Balance = money.Round2(investor.Balance + payout)
			if err := r.Users.Save(ctx, investor); err != nil {
				return err
			}

			if err := upsertSettlement(ctx, r, l, investment.StatusRepaid, 0, 0); err != nil {
				return err
			}

			entries, err := r.Collateral.ListByOwnerForUpdate(ctx, l.BorrowerID)
			if err != nil {
				return err
			}
			asset.ReleaseAcross(entries, l.Principal)
			for _, e := range entries {
				if err := r.Collateral.Save(ctx, e); err != nil {
					return err
				}
			}
		}

		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		result = &RepayResult{Loan: loanuc.ToDTO(l), FullyRepaid: fullyRepaid}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.FullyRepaid {
		u.afterTerminal(result.Loan.BorrowerID)
		notification.Dispatch(u.sink,
			notification.Event{
				UserID:   result.Loan.BorrowerID,
				Type:     notification.TypeLoanRepaid,
				Title:    "Loan repaid",
				Message:  fmt.Sprintf("Loan %s is fully repaid", in.LoanID),
				Data:     map[string]any{"loan_id": in.LoanID},
				Priority: notification.PriorityHigh,
			},
			notification.Event{
				UserID:   deref(result.Loan.InvestorID),
				Type:     notification.TypeInvestmentSettled,
				Title:    "Investment settled",
				Message:  fmt.Sprintf("Loan %s repaid; principal and interest credited", in.LoanID),
				Data:     map[string]any{"loan_id": in.LoanID},
				Priority: notification.PriorityHigh,
			})
	} else {
		notification.Dispatch(u.sink, notification.Event{
			UserID:   result.Loan.BorrowerID,
			Type:     notification.TypeRepaymentReceived,
			Title:    "Repayment received",
			Message:  fmt.Sprintf("Received %.2f towards loan %s", in.Amount, in.LoanID),
			Data:     map[string]any{"loan_id": in.LoanID, "amount": in.Amount},
			Priority: notification.PriorityNormal,
		})
	}
	return result, nil
}

// SimulateDefault liquidates the borrower's collateral at a fixed haircut and
// settles the investor's recovery record. The collateral reservation is NOT
// released here: liquidation consumes it, and release happens only through an
// explicit unlock once proceeds are reconciled externally.
func (u *Usecase) SimulateDefault(ctx context.Context, in DefaultInput) (*DefaultResult, error) {
	if in.ActorRole != string(user.RoleAdmin) {
		return nil, user.ErrForbidden
	}

	var result *DefaultResult
	err := u.uw.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StateActive {
			return domain.ErrInvalidState
		}

		entries, err := r.Collateral.ListByOwner(ctx, l.BorrowerID)
		if err != nil {
			return err
		}
		var totalValue float64
		for _, e := range entries {
			totalValue += e.AssetValue
		}

		recovered := money.RecoveryAfterHaircut(totalValue, liquidationHaircutPct)
		pct := money.RecoveryPercent(recovered, l.Principal)

		l.State = domain.StateDefaulted
		l.StateUpdatedAt = u.now()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		if err := upsertSettlement(ctx, r, l, investment.StatusDefaulted, recovered, pct); err != nil {
			return err
		}

		result = &DefaultResult{
			Loan:               loanuc.ToDTO(l),
			RecoveredAmount:    recovered,
			RecoveryPercentage: pct,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.afterTerminal(result.Loan.BorrowerID)
	notification.Dispatch(u.sink,
		notification.Event{
			UserID:   result.Loan.BorrowerID,
			Type:     notification.TypeLoanDefaulted,
			Title:    "Loan defaulted",
			Message:  fmt.Sprintf("Loan %s defaulted; collateral liquidated", in.LoanID),
			Data:     map[string]any{"loan_id": in.LoanID, "recovered": result.RecoveredAmount},
			Priority: notification.PriorityHigh,
		},
		notification.Event{
			UserID:   deref(result.Loan.InvestorID),
			Type:     notification.TypeInvestmentSettled,
			Title:    "Recovery settled",
			Message:  fmt.Sprintf("Loan %s defaulted; %.2f%% of principal recovered", in.LoanID, result.RecoveryPercentage),
			Data:     map[string]any{"loan_id": in.LoanID, "recovered": result.RecoveredAmount},
			Priority: notification.PriorityHigh,
		})
	return result, nil
}

// upsertSettlement creates the Investment record lazily at the first
// settlement event, or updates it with the final outcome.
func upsertSettlement(ctx context.Context, r uow.Repos, l *domain.Loan, st investment.Status, recovered, pct float64) error {
	if l.InvestorID == nil {
		return nil
	}
	inv, err := r.Investments.GetByLoanID(ctx, l.LoanID)
	switch {
	case err == nil:
		inv.Status = st
		inv.RecoveredAmount = recovered
		inv.RecoveryPct = pct
		return r.Investments.Save(ctx, inv)
	case errors.Is(err, investment.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return r.Investments.Create(ctx, &investment.Investment{
			InvestmentID:    id.NewID32(),
			LoanID:          l.LoanID,
			InvestorID:      *l.InvestorID,
			Amount:          l.Principal,
			Status:          st,
			RecoveredAmount: recovered,
			RecoveryPct:     pct,
		})
	default:
		return err
	}
}

// afterTerminal refreshes the borrower's trust history off the request path.
func (u *Usecase) afterTerminal(borrowerID string) {
	if u.rescorer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := u.rescorer.Recalculate(ctx, borrowerID); err != nil {
			slog.Error("trust rescore failed", "borrower_id", borrowerID, "err", err)
		}
	}()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
