package repayment

import (
	loanuc "lombard-backend/internal/usecase/loan"
)

type RepayInput struct {
	LoanID  string
	ActorID string
	Amount  float64
}

type RepayResult struct {
	Loan        loanuc.LoanDTO `json:"loan"`
	FullyRepaid bool           `json:"fully_repaid"`
}

type DefaultInput struct {
	LoanID    string
	ActorID   string
	ActorRole string
}

type DefaultResult struct {
	Loan               loanuc.LoanDTO `json:"loan"`
	RecoveredAmount    float64        `json:"recovered_amount"`
	RecoveryPercentage float64        `json:"recovery_percentage"`
}
