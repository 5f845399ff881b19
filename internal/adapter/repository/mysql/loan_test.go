package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	loanDomain "lombard-backend/internal/domain/loan"
	"lombard-backend/pkg/id"

	"gorm.io/gorm"
)

func makeLoan(loanID, borrowerID string, state loanDomain.State) *loanDomain.Loan {
	return &loanDomain.Loan{
		LoanID:         loanID,
		BorrowerID:     borrowerID,
		Principal:      50000,
		TenureMonths:   12,
		Rate:           16,
		EMI:            4537,
		Purpose:        loanDomain.PurposeBusiness,
		State:          state,
		RiskBand:       loanDomain.BandMedium,
		StateUpdatedAt: time.Now().UTC(),
	}
}

func TestLoanCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loanID := id.NewID32()
	borrower := id.NewID32()

	l := makeLoan(loanID, borrower, loanDomain.StateUnderReview)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByLoanID(ctx, loanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.LoanID != loanID || got.BorrowerID != borrower || got.Principal != 50000 {
		t.Errorf("unexpected loan: %+v", got)
	}

	if _, err := repo.GetByLoanID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing loan: got %v, want ErrRecordNotFound", err)
	}
}

func TestLoanSaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	l := makeLoan(id.NewID32(), id.NewID32(), loanDomain.StateListed)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	inv := id.NewID32()
	l.State = loanDomain.StateActive
	l.InvestorID = &inv
	l.DisbursedAmount = l.Principal
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByLoanID(ctx, l.LoanID)
	if err != nil {
		t.Fatalf("GetByLoanID: %v", err)
	}
	if got.State != loanDomain.StateActive || got.InvestorID == nil || *got.InvestorID != inv {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestLoanListOpenForFunding(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	borrower := id.NewID32()
	listed1 := makeLoan(id.NewID32(), borrower, loanDomain.StateListed)
	listed2 := makeLoan(id.NewID32(), borrower, loanDomain.StateListed)
	review := makeLoan(id.NewID32(), borrower, loanDomain.StateUnderReview)

	inv := id.NewID32()
	funded := makeLoan(id.NewID32(), borrower, loanDomain.StateListed)
	funded.InvestorID = &inv

	for _, l := range []*loanDomain.Loan{listed1, listed2, review, funded} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	open, err := repo.ListOpenForFunding(ctx)
	if err != nil {
		t.Fatalf("ListOpenForFunding: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("open count = %d, want 2", len(open))
	}
	for _, l := range open {
		if l.State != loanDomain.StateListed || l.InvestorID != nil {
			t.Errorf("non-fundable loan listed: %+v", l)
		}
	}
	// newest first
	if open[0].ID < open[1].ID {
		t.Errorf("order: got ids %d before %d", open[0].ID, open[1].ID)
	}
}

func TestLoanListByBorrower(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	borrower := id.NewID32()
	other := id.NewID32()

	active := makeLoan(id.NewID32(), borrower, loanDomain.StateActive)
	repaid := makeLoan(id.NewID32(), borrower, loanDomain.StateRepaid)
	foreign := makeLoan(id.NewID32(), other, loanDomain.StateActive)
	for _, l := range []*loanDomain.Loan{active, repaid, foreign} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.ListByBorrower(ctx, borrower)
	if err != nil {
		t.Fatalf("ListByBorrower: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("borrower loans = %d, want 2", len(all))
	}

	act, err := repo.ListActiveByBorrower(ctx, borrower)
	if err != nil {
		t.Fatalf("ListActiveByBorrower: %v", err)
	}
	if len(act) != 1 || act[0].LoanID != active.LoanID {
		t.Fatalf("active loans: %+v", act)
	}
}
