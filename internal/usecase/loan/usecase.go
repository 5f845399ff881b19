package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lombard-backend/internal/adapter/notification"
	"lombard-backend/internal/domain/asset"
	domain "lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/uow"
	"lombard-backend/internal/domain/user"
	"lombard-backend/internal/usecase/underwriting"
	"lombard-backend/pkg/id"
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

// Apply creates the loan, underwrites it, and auto-lists it when the
// automated decision is APPROVED. Anything else stays under review for a
// human decision. Underwriting itself never fails the call.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*ApplyResult, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if in.TenureMonths <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if !in.Purpose.Valid() {
		return nil, fmt.Errorf("unknown loan purpose %q", in.Purpose)
	}

	var result *ApplyResult
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		borrower, err := r.Users.GetByUserID(ctx, in.BorrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrNotFound
			}
			return err
		}

		// Lock the entries so the credit check can't race a concurrent
		// reserve against the same collateral.
		entries, err := r.Collateral.ListByOwnerForUpdate(ctx, in.BorrowerID)
		if err != nil {
			return err
		}
		var available, totalValue float64
		for _, e := range entries {
			available += e.Available()
			totalValue += e.AssetValue
		}
		if in.Amount > available+1e-6 {
			return asset.ErrInsufficientCredit
		}

		active, err := r.Loans.ListActiveByBorrower(ctx, in.BorrowerID)
		if err != nil {
			return err
		}
		var activeTotal float64
		for _, l := range active {
			activeTotal += l.Principal
		}

		var trustScore float64
		if latest, err := r.TrustScores.Latest(ctx, in.BorrowerID); err == nil {
			trustScore = latest.Score
		} else if !errors.Is(err, trust.ErrNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		as := underwriting.Assess(underwriting.Signals{
			TrustScore:           trustScore,
			TotalCollateralValue: totalValue,
			ActiveLoanTotal:      activeTotal,
			ActiveLoanCount:      len(active),
			AnnualIncome:         borrower.AnnualIncome,
			RequestedAmount:      in.Amount,
			TenureMonths:         in.TenureMonths,
			Purpose:              in.Purpose,
			KYCVerified:          borrower.KYCVerified,
		})

		rate := as.RiskBand.AnnualRate()
		now := u.now()
		l := &domain.Loan{
			LoanID:             id.NewID32(),
			BorrowerID:         in.BorrowerID,
			Principal:          in.Amount,
			TenureMonths:       in.TenureMonths,
			Rate:               rate,
			EMI:                money.EMI(in.Amount, rate, in.TenureMonths),
			Purpose:            in.Purpose,
			State:              domain.StateUnderReview,
			RiskBand:           as.RiskBand,
			DefaultProbability: as.DefaultProbability,
			Decision:           as.Decision,
			StateUpdatedAt:     now,
		}
		if as.Decision == domain.DecisionApproved {
			l.State = domain.StateListed
			l.ApprovedAt = &now
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		result = &ApplyResult{Loan: ToDTO(l), Assessment: as}
		return nil
	})
	if err != nil {
		return nil, err
	}

	evType := notification.TypeLoanApplied
	msg := fmt.Sprintf("Loan %s is under review", result.Loan.LoanID)
	if result.Loan.State == string(domain.StateListed) {
		evType = notification.TypeLoanListed
		msg = fmt.Sprintf("Loan %s approved and listed for funding", result.Loan.LoanID)
	}
	notification.Dispatch(u.sink, notification.Event{
		UserID:   in.BorrowerID,
		Type:     evType,
		Title:    "Loan application received",
		Message:  msg,
		Data:     map[string]any{"loan_id": result.Loan.LoanID, "risk_band": result.Loan.RiskBand},
		Priority: notification.PriorityNormal,
	})
	return result, nil
}

// Review applies a manual underwriting decision. Valid only while the loan is
// under review; admins only.
func (u *Usecase) Review(ctx context.Context, in ReviewInput) (*LoanDTO, error) {
	if in.ActorRole != string(user.RoleAdmin) {
		return nil, user.ErrForbidden
	}
	if in.Decision != ReviewApprove && in.Decision != ReviewReject {
		return nil, fmt.Errorf("unknown review decision %q", in.Decision)
	}

	var dto *LoanDTO
	err := u.uw.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StateUnderReview {
			return domain.ErrInvalidState
		}
		now := u.now()
		switch in.Decision {
		case ReviewApprove:
			l.State = domain.StateListed
			l.Decision = domain.DecisionApproved
			l.ApprovedAt = &now
		case ReviewReject:
			l.State = domain.StateRejected
			l.Decision = domain.DecisionRejected
		}
		l.DecisionReason = in.Reason
		l.StateUpdatedAt = now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		d := ToDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}

	evType := notification.TypeLoanListed
	title := "Loan approved"
	if dto.State == string(domain.StateRejected) {
		evType = notification.TypeLoanRejected
		title = "Loan rejected"
	}
	notification.Dispatch(u.sink, notification.Event{
		UserID:   dto.BorrowerID,
		Type:     evType,
		Title:    title,
		Message:  fmt.Sprintf("Loan %s: %s", dto.LoanID, dto.State),
		Data:     map[string]any{"loan_id": dto.LoanID, "reason": in.Reason},
		Priority: notification.PriorityHigh,
	})
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		d := ToDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
