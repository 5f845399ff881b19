package loan

import (
	"errors"
	"time"
)

type State string

const (
	StateUnderReview State = "under_review"
	StateListed      State = "listed_for_funding"
	StateActive      State = "active"
	StateRepaid      State = "repaid"
	StateDefaulted   State = "defaulted"
	StateRejected    State = "rejected"
)

// transitions is the complete state machine; anything absent is invalid.
var transitions = map[State][]State{
	StateUnderReview: {StateListed, StateRejected},
	StateListed:      {StateActive},
	StateActive:      {StateRepaid, StateDefaulted},
}

func (s State) CanTransitionTo(next State) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Purpose is the closed set of loan purposes.
type Purpose string

const (
	PurposeBusiness          Purpose = "business"
	PurposePersonal          Purpose = "personal"
	PurposeHomeImprovement   Purpose = "home-improvement"
	PurposeEducation         Purpose = "education"
	PurposeMedical           Purpose = "medical"
	PurposeVehicle           Purpose = "vehicle"
	PurposeDebtConsolidation Purpose = "debt-consolidation"
)

func (p Purpose) Valid() bool {
	switch p {
	case PurposeBusiness, PurposePersonal, PurposeHomeImprovement, PurposeEducation,
		PurposeMedical, PurposeVehicle, PurposeDebtConsolidation:
		return true
	}
	return false
}

// RiskMultiplier scales the modeled default probability by purpose.
func (p Purpose) RiskMultiplier() float64 {
	switch p {
	case PurposeBusiness:
		return 1.0
	case PurposePersonal:
		return 1.2
	case PurposeHomeImprovement:
		return 0.8
	case PurposeEducation:
		return 0.9
	case PurposeMedical:
		return 1.1
	case PurposeVehicle:
		return 0.7
	case PurposeDebtConsolidation:
		return 1.3
	default:
		return 1.0
	}
}

type RiskBand string

const (
	BandLow    RiskBand = "low"
	BandMedium RiskBand = "medium"
	BandHigh   RiskBand = "high"
)

// AnnualRate is the percent interest rate priced for the band.
func (b RiskBand) AnnualRate() float64 {
	switch b {
	case BandLow:
		return 12
	case BandMedium:
		return 16
	default:
		return 21
	}
}

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionReview   Decision = "review"
	DecisionRejected Decision = "rejected"
)

var (
	ErrNotFound      = errors.New("loan not found")
	ErrInvalidState  = errors.New("invalid loan state for operation")
	ErrNotAvailable  = errors.New("loan not available for funding")
	ErrAlreadyFunded = errors.New("loan already funded")
	ErrInvalidAmount = errors.New("invalid amount")
)

type Loan struct {
	ID                 uint64     `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string     `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	BorrowerID         string     `gorm:"size:32;index:idx_loans_borrower" json:"borrower_id"`
	InvestorID         *string    `gorm:"size:32;index:idx_loans_investor" json:"investor_id,omitempty"`
	Principal          float64    `gorm:"type:decimal(18,2)" json:"principal"`
	TenureMonths       int        `json:"tenure_months"`
	Rate               float64    `gorm:"type:decimal(6,2)" json:"rate"`
	EMI                float64    `gorm:"type:decimal(18,2)" json:"emi"`
	Purpose            Purpose    `gorm:"size:32" json:"purpose"`
	State              State      `gorm:"type:enum('under_review','listed_for_funding','active','repaid','defaulted','rejected');default:'under_review'" json:"state"`
	DisbursedAmount    float64    `gorm:"type:decimal(18,2);default:0" json:"disbursed_amount"`
	TotalRepaid        float64    `gorm:"type:decimal(18,2);default:0" json:"total_repaid"`
	RiskBand           RiskBand   `gorm:"size:16" json:"risk_band"`
	DefaultProbability float64    `gorm:"type:decimal(6,4)" json:"default_probability"`
	Decision           Decision   `gorm:"size:16" json:"decision"`
	DecisionReason     string     `gorm:"type:text" json:"decision_reason,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	DisbursedAt        *time.Time `json:"disbursed_at,omitempty"`
	StateUpdatedAt     time.Time  `gorm:"autoCreateTime" json:"state_updated_at"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
