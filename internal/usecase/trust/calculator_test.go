package trust

import (
	"context"
	"errors"
	"testing"
	"time"

	"lombard-backend/internal/domain/asset"
	domain "lombard-backend/internal/domain/loan"
	trustdomain "lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/user"
	"lombard-backend/internal/testutil/memstore"
)

const borrowerID = "11111111111111111111111111111111"

// seedBorrower pins CreatedAt an hour ahead so the account-age factor is
// exactly zero and scores stay deterministic without clock injection.
func seedBorrower(store *memstore.Store, kyc bool) {
	store.SeedUser(&user.User{
		UserID:      borrowerID,
		Role:        user.RoleBorrower,
		KYCVerified: kyc,
		CreatedAt:   time.Now().UTC().Add(time.Hour),
	})
}

func seedLoans(store *memstore.Store, repaid, defaulted, active int) {
	states := map[domain.State]int{
		domain.StateRepaid:    repaid,
		domain.StateDefaulted: defaulted,
		domain.StateActive:    active,
	}
	i := 0
	for state, n := range states {
		for j := 0; j < n; j++ {
			store.SeedLoan(&domain.Loan{
				LoanID:     string(rune('a'+i)) + "000000000000000000000000000000" + string(rune('0'+j)),
				BorrowerID: borrowerID,
				State:      state,
				Principal:  10000,
			})
		}
		i++
	}
}

func TestRecalculate_WeighsLoanBook(t *testing.T) {
	store := memstore.New()
	seedBorrower(store, true)
	seedLoans(store, 2, 1, 1)
	store.SeedCollateral(&asset.CollateralEntry{
		EntryID: "e1e1e1e1e1e1e1e1e1e1e1e1e1e1e1e1",
		AssetID: "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1",
		OwnerID: borrowerID, CreditLimit: 50000,
	})

	c := NewCalculator(store)
	dto, err := c.RecalculateWithResult(context.Background(), borrowerID)
	if err != nil {
		t.Fatalf("RecalculateWithResult: %v", err)
	}

	// 500 base + 80 repaid - 120 defaulted - 15 active + 50 coverage + 60 kyc
	if dto.Score != 555 {
		t.Fatalf("score = %v, want 555 (factors %v)", dto.Score, dto.Factors)
	}
	if dto.Factors["repaid_loans"] != 80 {
		t.Fatalf("repaid factor = %v, want 80", dto.Factors["repaid_loans"])
	}
	if dto.Factors["defaulted_loans"] != -120 {
		t.Fatalf("defaulted factor = %v, want -120", dto.Factors["defaulted_loans"])
	}

	scores := store.Scores(borrowerID)
	if len(scores) != 1 {
		t.Fatalf("history rows = %d, want 1", len(scores))
	}
	if scores[0].FactorsJSON == "" {
		t.Fatal("factors payload not persisted")
	}
}

func TestRecalculate_Caps(t *testing.T) {
	store := memstore.New()
	seedBorrower(store, false)
	seedLoans(store, 8, 0, 0) // 320 raw repaid points, capped at 200
	store.SeedCollateral(&asset.CollateralEntry{
		EntryID: "e1e1e1e1e1e1e1e1e1e1e1e1e1e1e1e1",
		AssetID: "a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1a1",
		OwnerID: borrowerID, CreditLimit: 1000000, // 1000 raw coverage, capped at 150
	})

	c := NewCalculator(store)
	dto, err := c.RecalculateWithResult(context.Background(), borrowerID)
	if err != nil {
		t.Fatalf("RecalculateWithResult: %v", err)
	}
	if dto.Factors["repaid_loans"] != 200 {
		t.Fatalf("repaid factor = %v, want cap 200", dto.Factors["repaid_loans"])
	}
	if dto.Factors["collateral_coverage"] != 150 {
		t.Fatalf("coverage factor = %v, want cap 150", dto.Factors["collateral_coverage"])
	}
	// 500 + 200 + 150, no kyc, no age
	if dto.Score != 850 {
		t.Fatalf("score = %v, want 850", dto.Score)
	}
}

func TestRecalculate_FloorsAtZero(t *testing.T) {
	store := memstore.New()
	seedBorrower(store, false)
	seedLoans(store, 0, 6, 0) // -720 from defaults

	c := NewCalculator(store)
	dto, err := c.RecalculateWithResult(context.Background(), borrowerID)
	if err != nil {
		t.Fatalf("RecalculateWithResult: %v", err)
	}
	if dto.Score != 0 {
		t.Fatalf("score = %v, want floor 0", dto.Score)
	}
}

func TestRecalculate_AccountAgeCapped(t *testing.T) {
	store := memstore.New()
	store.SeedUser(&user.User{
		UserID:    borrowerID,
		Role:      user.RoleBorrower,
		CreatedAt: time.Now().UTC().AddDate(-10, 0, 0),
	})

	c := NewCalculator(store)
	dto, err := c.RecalculateWithResult(context.Background(), borrowerID)
	if err != nil {
		t.Fatalf("RecalculateWithResult: %v", err)
	}
	if dto.Factors["account_age"] != 100 {
		t.Fatalf("age factor = %v, want cap 100", dto.Factors["account_age"])
	}
}

func TestRecalculate_UnknownBorrower(t *testing.T) {
	c := NewCalculator(memstore.New())
	if err := c.Recalculate(context.Background(), borrowerID); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("got %v, want user.ErrNotFound", err)
	}
}

func TestCurrent(t *testing.T) {
	store := memstore.New()
	seedBorrower(store, true)
	c := NewCalculator(store)
	ctx := context.Background()

	if _, err := c.Current(ctx, borrowerID); !errors.Is(err, trustdomain.ErrNotFound) {
		t.Fatalf("empty history: got %v, want ErrNotFound", err)
	}

	want, err := c.RecalculateWithResult(ctx, borrowerID)
	if err != nil {
		t.Fatalf("RecalculateWithResult: %v", err)
	}
	got, err := c.Current(ctx, borrowerID)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got.Score != want.Score {
		t.Fatalf("Current score = %v, want %v", got.Score, want.Score)
	}
	if got.Factors["kyc_verified"] != 60 {
		t.Fatalf("factors not round-tripped: %v", got.Factors)
	}
}
