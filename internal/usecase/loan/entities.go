package loan

import (
	"time"

	domain "lombard-backend/internal/domain/loan"
	"lombard-backend/internal/usecase/underwriting"
)

type ApplyInput struct {
	BorrowerID   string
	Amount       float64
	TenureMonths int
	Purpose      domain.Purpose
}

type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "APPROVE"
	ReviewReject  ReviewDecision = "REJECT"
)

type ReviewInput struct {
	LoanID    string
	ActorID   string
	ActorRole string
	Decision  ReviewDecision
	Reason    string
}

type LoanDTO struct {
	LoanID             string     `json:"loan_id"`
	BorrowerID         string     `json:"borrower_id"`
	InvestorID         *string    `json:"investor_id,omitempty"`
	Principal          float64    `json:"principal"`
	TenureMonths       int        `json:"tenure_months"`
	Rate               float64    `json:"rate"`
	EMI                float64    `json:"emi"`
	Purpose            string     `json:"purpose"`
	State              string     `json:"state"`
	DisbursedAmount    float64    `json:"disbursed_amount"`
	TotalRepaid        float64    `json:"total_repaid"`
	RiskBand           string     `json:"risk_band"`
	DefaultProbability float64    `json:"default_probability"`
	Decision           string     `json:"decision"`
	DecisionReason     string     `json:"decision_reason,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	DisbursedAt        *time.Time `json:"disbursed_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type ApplyResult struct {
	Loan       LoanDTO                 `json:"loan"`
	Assessment underwriting.Assessment `json:"risk_assessment"`
}

func ToDTO(l *domain.Loan) LoanDTO {
	return LoanDTO{
		LoanID:             l.LoanID,
		BorrowerID:         l.BorrowerID,
		InvestorID:         l.InvestorID,
		Principal:          l.Principal,
		TenureMonths:       l.TenureMonths,
		Rate:               l.Rate,
		EMI:                l.EMI,
		Purpose:            string(l.Purpose),
		State:              string(l.State),
		DisbursedAmount:    l.DisbursedAmount,
		TotalRepaid:        l.TotalRepaid,
		RiskBand:           string(l.RiskBand),
		DefaultProbability: l.DefaultProbability,
		Decision:           string(l.Decision),
		DecisionReason:     l.DecisionReason,
		ApprovedAt:         l.ApprovedAt,
		DisbursedAt:        l.DisbursedAt,
		CreatedAt:          l.CreatedAt,
	}
}
