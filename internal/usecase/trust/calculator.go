// Package trust maintains the borrower's append-only trust score history.
// The score is a deterministic 0-1000 proxy recomputed from the borrower's
// loan book, collateral position and account signals; it is NOT a
// creditworthiness model, just the weighted heuristic underwriting consumes.
package trust

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	domain "lombard-backend/internal/domain/loan"
	trustdomain "lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/uow"
	"lombard-backend/internal/domain/user"
	"lombard-backend/pkg/id"

	"gorm.io/gorm"
)

const (
	baseScore = 500

	repaidLoanPoints    = 40
	repaidLoanCap       = 200
	defaultedLoanPoints = 120
	activeLoanPenalty   = 15
	kycPoints           = 60
	coverageCap         = 150
	accountAgePerMonth  = 2
	accountAgeCap       = 100
)

type Calculator struct {
	uw  uow.UnitOfWork
	now func() time.Time
}

func NewCalculator(uw uow.UnitOfWork) *Calculator {
	return &Calculator{uw: uw, now: func() time.Time { return time.Now().UTC() }}
}

type ScoreDTO struct {
	BorrowerID   string             `json:"borrower_id"`
	Score        float64            `json:"score"`
	Factors      map[string]float64 `json:"factors"`
	CalculatedAt time.Time          `json:"calculated_at"`
}

// Recalculate computes a fresh score and appends it to the history.
func (c *Calculator) Recalculate(ctx context.Context, borrowerID string) error {
	_, err := c.RecalculateWithResult(ctx, borrowerID)
	return err
}

func (c *Calculator) RecalculateWithResult(ctx context.Context, borrowerID string) (*ScoreDTO, error) {
	var dto *ScoreDTO
	err := c.uw.WithinTx(ctx, func(r uow.Repos) error {
		borrower, err := r.Users.GetByUserID(ctx, borrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return user.ErrNotFound
			}
			return err
		}
		loans, err := r.Loans.ListByBorrower(ctx, borrowerID)
		if err != nil {
			return err
		}
		entries, err := r.Collateral.ListByOwner(ctx, borrowerID)
		if err != nil {
			return err
		}

		now := c.now()
		factors := map[string]float64{}

		var repaid, defaulted, active int
		for _, l := range loans {
			switch l.State {
			case domain.StateRepaid:
				repaid++
			case domain.StateDefaulted:
				defaulted++
			case domain.StateActive:
				active++
			}
		}

		repaidPts := float64(repaid * repaidLoanPoints)
		if repaidPts > repaidLoanCap {
			repaidPts = repaidLoanCap
		}
		factors["repaid_loans"] = repaidPts
		factors["defaulted_loans"] = -float64(defaulted * defaultedLoanPoints)
		factors["active_loans"] = -float64(active * activeLoanPenalty)

		var totalLimit float64
		for _, e := range entries {
			totalLimit += e.CreditLimit
		}
		coveragePts := totalLimit / 1000
		if coveragePts > coverageCap {
			coveragePts = coverageCap
		}
		factors["collateral_coverage"] = coveragePts

		if borrower.KYCVerified {
			factors["kyc_verified"] = kycPoints
		} else {
			factors["kyc_verified"] = 0
		}

		ageMonths := now.Sub(borrower.CreatedAt).Hours() / 24 / 30
		agePts := ageMonths * accountAgePerMonth
		if agePts > accountAgeCap {
			agePts = accountAgeCap
		}
		if agePts < 0 {
			agePts = 0
		}
		factors["account_age"] = agePts

		score := float64(baseScore)
		for _, v := range factors {
			score += v
		}
		if score < 0 {
			score = 0
		}
		if score > 1000 {
			score = 1000
		}

		payload, err := json.Marshal(factors)
		if err != nil {
			return err
		}
		if err := r.TrustScores.Append(ctx, &trustdomain.Score{
			ScoreID:      id.NewID32(),
			BorrowerID:   borrowerID,
			Score:        score,
			FactorsJSON:  string(payload),
			CalculatedAt: now,
		}); err != nil {
			return err
		}

		dto = &ScoreDTO{BorrowerID: borrowerID, Score: score, Factors: factors, CalculatedAt: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Current returns the latest score, or ErrNotFound when no history exists.
func (c *Calculator) Current(ctx context.Context, borrowerID string) (*ScoreDTO, error) {
	var dto *ScoreDTO
	err := c.uw.WithinTx(ctx, func(r uow.Repos) error {
		s, err := r.TrustScores.Latest(ctx, borrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return trustdomain.ErrNotFound
			}
			return err
		}
		factors := map[string]float64{}
		_ = json.Unmarshal([]byte(s.FactorsJSON), &factors)
		dto = &ScoreDTO{BorrowerID: s.BorrowerID, Score: s.Score, Factors: factors, CalculatedAt: s.CalculatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
