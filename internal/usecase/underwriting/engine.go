// Package underwriting scores a loan request against the borrower's financial
// signals. Assess is a pure function: it never touches storage and never fails
// on a bad profile; high risk is an outcome, not an error.
package underwriting

import (
	"fmt"
	"math"

	"lombard-backend/internal/domain/loan"
)

const (
	// DefaultTrustScore is assumed for borrowers with no score history.
	DefaultTrustScore = 550

	baseDefaultRate = 0.15
	minProbability  = 0.05
	maxProbability  = 0.75

	// Sentinel debt-to-income for borrowers with zero/unknown income.
	// Deliberately punitive: it pushes both the probability and the
	// approval score to their worst DTI tier.
	dtiUnknownIncome = 999
)

// Signals are the underwriting inputs, assembled by the caller from the
// borrower's account, collateral ledger, loan book and trust history.
type Signals struct {
	TrustScore           float64 // <=0 means no history; DefaultTrustScore is assumed
	TotalCollateralValue float64
	ActiveLoanTotal      float64 // sum of other ACTIVE loan principals
	ActiveLoanCount      int
	AnnualIncome         float64
	RequestedAmount      float64
	TenureMonths         int
	Purpose              loan.Purpose
	KYCVerified          bool
}

// Contributions is the weighted per-factor breakdown of the modeled default
// probability, kept for auditability.
type Contributions struct {
	TrustScore        float64 `json:"trust_score"`
	Collateral        float64 `json:"collateral"`
	DebtToIncome      float64 `json:"debt_to_income"`
	ActiveLoans       float64 `json:"active_loans"`
	KYC               float64 `json:"kyc"`
	PurposeMultiplier float64 `json:"purpose_multiplier"`
}

type Assessment struct {
	DefaultProbability float64       `json:"default_probability"`
	RiskBand           loan.RiskBand `json:"risk_band"`
	ApprovalScore      int           `json:"approval_score"`
	Decision           loan.Decision `json:"decision"`
	DebtToIncome       float64       `json:"debt_to_income"`
	CollateralToLoan   float64       `json:"collateral_to_loan"`
	Contributions      Contributions `json:"contributions"`
	Explanations       []string      `json:"explanations"`
}

// Assess runs the deterministic scoring model over the signals.
func Assess(s Signals) Assessment {
	ts := s.TrustScore
	if ts <= 0 {
		ts = DefaultTrustScore
	}

	monthlyIncome := s.AnnualIncome / 12

	var dti float64 = dtiUnknownIncome
	if monthlyIncome > 0 {
		dti = (s.ActiveLoanTotal + s.RequestedAmount) / monthlyIncome
	}

	var ctl float64
	if s.RequestedAmount > 0 {
		ctl = s.TotalCollateralValue / s.RequestedAmount
	}

	c := Contributions{
		TrustScore:        math.Max(0, 100-ts/10) * 0.0005,
		Collateral:        collateralPoints(ctl) * 0.0008,
		DebtToIncome:      dtiPoints(dti) * 0.0006,
		ActiveLoans:       activeLoanPoints(s.ActiveLoanCount) * 0.0004,
		KYC:               kycPoints(s.KYCVerified) * 0.0003,
		PurposeMultiplier: s.Purpose.RiskMultiplier(),
	}

	prob := (baseDefaultRate + c.TrustScore + c.Collateral + c.DebtToIncome +
		c.ActiveLoans + c.KYC) * c.PurposeMultiplier
	prob = clamp(prob, minProbability, maxProbability)

	score := approvalScore(ts, ctl, dti, s.ActiveLoanCount, s.KYCVerified)

	return Assessment{
		DefaultProbability: prob,
		RiskBand:           BandFor(prob),
		ApprovalScore:      score,
		Decision:           decisionFor(score),
		DebtToIncome:       dti,
		CollateralToLoan:   ctl,
		Contributions:      c,
		Explanations:       explain(ts, ctl, dti, s),
	}
}

// BandFor buckets a default probability: ≤0.15 low, ≤0.35 medium, else high.
func BandFor(probability float64) loan.RiskBand {
	switch {
	case probability <= 0.15:
		return loan.BandLow
	case probability <= 0.35:
		return loan.BandMedium
	default:
		return loan.BandHigh
	}
}

func decisionFor(score int) loan.Decision {
	switch {
	case score >= 70:
		return loan.DecisionApproved
	case score >= 50:
		return loan.DecisionReview
	default:
		return loan.DecisionRejected
	}
}

func collateralPoints(ctl float64) float64 {
	switch {
	case ctl < 0.25:
		return 35
	case ctl < 0.5:
		return 15
	default:
		return 5
	}
}

func dtiPoints(dti float64) float64 {
	switch {
	case dti > 5:
		return 50
	case dti > 3:
		return 25
	default:
		return 10
	}
}

func activeLoanPoints(count int) float64 {
	switch {
	case count > 4:
		return 40
	case count > 2:
		return 20
	default:
		return 8
	}
}

func kycPoints(verified bool) float64 {
	if verified {
		return 5
	}
	return 20
}

func approvalScore(ts, ctl, dti float64, activeCount int, kyc bool) int {
	score := 0
	switch {
	case ts >= 750:
		score += 30
	case ts >= 650:
		score += 20
	case ts >= 550:
		score += 10
	}
	switch {
	case ctl >= 0.5:
		score += 30
	case ctl >= 0.3:
		score += 20
	case ctl >= 0.1:
		score += 10
	}
	switch {
	case dti <= 2:
		score += 20
	case dti <= 3:
		score += 10
	}
	switch {
	case activeCount <= 1:
		score += 15
	case activeCount <= 3:
		score += 8
	}
	if kyc {
		score += 10
	}
	return score
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// explain renders the crossed thresholds as short audit strings. The output
// is deterministic for identical signals.
func explain(ts, ctl, dti float64, s Signals) []string {
	out := make([]string, 0, 6)

	switch {
	case ts >= 750:
		out = append(out, fmt.Sprintf("trust score %.0f indicates strong repayment history", ts))
	case ts >= 650:
		out = append(out, fmt.Sprintf("trust score %.0f indicates good repayment history", ts))
	case ts >= 550:
		out = append(out, fmt.Sprintf("trust score %.0f indicates fair repayment history", ts))
	default:
		out = append(out, fmt.Sprintf("trust score %.0f is below the fair threshold and raises modeled risk", ts))
	}

	switch {
	case ctl >= 0.5:
		out = append(out, fmt.Sprintf("collateral covers %.0f%% of the requested amount", ctl*100))
	case ctl >= 0.25:
		out = append(out, fmt.Sprintf("collateral coverage at %.0f%% of the requested amount is moderate", ctl*100))
	default:
		out = append(out, fmt.Sprintf("collateral coverage at %.0f%% of the requested amount is thin", ctl*100))
	}

	switch {
	case dti >= dtiUnknownIncome:
		out = append(out, "income is zero or unknown; debt-to-income treated as worst case")
	case dti > 5:
		out = append(out, fmt.Sprintf("debt-to-income %.1f exceeds 5x monthly income", dti))
	case dti > 3:
		out = append(out, fmt.Sprintf("debt-to-income %.1f exceeds 3x monthly income", dti))
	default:
		out = append(out, fmt.Sprintf("debt-to-income %.1f is within comfortable range", dti))
	}

	switch {
	case s.ActiveLoanCount > 4:
		out = append(out, fmt.Sprintf("%d active loans indicate heavy existing load", s.ActiveLoanCount))
	case s.ActiveLoanCount > 2:
		out = append(out, fmt.Sprintf("%d active loans indicate elevated existing load", s.ActiveLoanCount))
	}

	if s.KYCVerified {
		out = append(out, "KYC verified")
	} else {
		out = append(out, "KYC not verified; identity risk priced in")
	}

	if m := s.Purpose.RiskMultiplier(); m != 1.0 {
		out = append(out, fmt.Sprintf("purpose %q carries risk multiplier %.1f", string(s.Purpose), m))
	}

	return out
}
