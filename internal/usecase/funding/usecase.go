package funding

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"lombard-backend/internal/adapter/notification"
	"lombard-backend/internal/domain/asset"
	domain "lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/uow"
	"lombard-backend/internal/domain/user"
	"lombard-backend/internal/usecase/collateral"
	loanuc "lombard-backend/internal/usecase/loan"
	"lombard-backend/pkg/money"

	"gorm.io/gorm"
)

type Usecase struct {
	uw   uow.UnitOfWork
	sink notification.Sink
	now  func() time.Time
}

func NewUsecase(uw uow.UnitOfWork, sink notification.Sink) *Usecase {
	return &Usecase{uw: uw, sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// List returns loans open for funding, enriched with the borrower's current
// trust score and collateral position.
func (u *Usecase) List(ctx context.Context, f Filters) ([]Opportunity, error) {
	var out []Opportunity
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListOpenForFunding(ctx)
		if err != nil {
			return err
		}
		out = make([]Opportunity, 0, len(loans))
		for _, l := range loans {
			if f.RiskBand != "" && string(l.RiskBand) != f.RiskBand {
				continue
			}
			if f.MinAmount > 0 && l.Principal < f.MinAmount {
				continue
			}
			if f.MaxAmount > 0 && l.Principal > f.MaxAmount {
				continue
			}

			var score float64
			if latest, err := r.TrustScores.Latest(ctx, l.BorrowerID); err == nil {
				score = latest.Score
			} else if !errors.Is(err, trust.ErrNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if f.MinTrustScore > 0 && score < f.MinTrustScore {
				continue
			}

			entries, err := r.Collateral.ListByOwner(ctx, l.BorrowerID)
			if err != nil {
				return err
			}

			out = append(out, Opportunity{
				Loan:               loanuc.ToDTO(l),
				BorrowerTrustScore: score,
				Collateral:         collateral.Summarize(entries),
				ExpectedReturn:     money.SimpleInterest(l.Principal, l.Rate, l.TenureMonths),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortOpportunities(out, f.SortBy)
	return out, nil
}

func sortOpportunities(ops []Opportunity, key SortKey) {
	switch key {
	case SortAmount:
		sort.SliceStable(ops, func(i, j int) bool { return ops[i].Loan.Principal > ops[j].Loan.Principal })
	case SortTrustScore:
		sort.SliceStable(ops, func(i, j int) bool { return ops[i].BorrowerTrustScore > ops[j].BorrowerTrustScore })
	case SortExpectedReturn:
		sort.SliceStable(ops, func(i, j int) bool { return ops[i].ExpectedReturn > ops[j].ExpectedReturn })
	default:
		// repository order: newest first
	}
}

// Invest atomically binds the investor to the loan: debit balance, bind,
// activate, stamp disbursement, reserve collateral credit. Exactly one
// concurrent call can observe the loan as available; everything rolls back
// together on any failure.
func (u *Usecase) Invest(ctx context.Context, investorID, loanID string) (*InvestResult, error) {
	var result *InvestResult
	var borrowerID string

	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		// Lock order is loan → user → collateral everywhere; keeps
		// concurrent invest/repay off each other's toes.
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}

		investor, err := r.Users.GetByUserIDForUpdate(ctx, investorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrNotFound
			}
			return err
		}
		if investor.Role != user.RoleInvestor {
			return user.ErrNotInvestorRole
		}
		if l.State != domain.StateListed {
			return domain.ErrNotAvailable
		}
		if l.InvestorID != nil {
			return domain.ErrAlreadyFunded
		}
		if investor.Balance < l.Principal {
			return user.ErrInsufficientBalance
		}

		entries, err := r.Collateral.ListByOwnerForUpdate(ctx, l.BorrowerID)
		if err != nil {
			return err
		}
		if err := asset.ReserveAcross(entries, l.Principal); err != nil {
			return err
		}
		for _, e := range entries {
			if err := r.Collateral.Save(ctx, e); err != nil {
				return err
			}
		}

		investor.Balance = money.Round2(investor.Balance - l.Principal)
		if err := r.Users.Save(ctx, investor); err != nil {
			return err
		}

		now := u.now()
		l.InvestorID = &investor.UserID
		l.State = domain.StateActive
		l.DisbursedAmount = l.Principal
		l.DisbursedAt = &now
		l.StateUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		borrowerID = l.BorrowerID
		result = &InvestResult{Loan: loanuc.ToDTO(l), NewInvestorBalance: investor.Balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.Dispatch(u.sink,
		notification.Event{
			UserID:   borrowerID,
			Type:     notification.TypeLoanFunded,
			Title:    "Loan funded",
			Message:  fmt.Sprintf("Loan %s has been funded and disbursed", loanID),
			Data:     map[string]any{"loan_id": loanID, "amount": result.Loan.Principal},
			Priority: notification.PriorityHigh,
		},
		notification.Event{
			UserID:   investorID,
			Type:     notification.TypeLoanFunded,
			Title:    "Investment confirmed",
			Message:  fmt.Sprintf("You funded loan %s", loanID),
			Data:     map[string]any{"loan_id": loanID, "amount": result.Loan.Principal},
			Priority: notification.PriorityNormal,
		})
	return result, nil
}
