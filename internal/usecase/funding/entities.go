package funding

import (
	loanuc "lombard-backend/internal/usecase/loan"
	"lombard-backend/internal/usecase/collateral"
)

type SortKey string

const (
	SortNewest         SortKey = "newest"
	SortAmount         SortKey = "amount"
	SortTrustScore     SortKey = "trust_score"
	SortExpectedReturn SortKey = "expected_return"
)

type Filters struct {
	RiskBand      string
	MinAmount     float64
	MaxAmount     float64
	MinTrustScore float64
	SortBy        SortKey
}

// Opportunity is a listed loan enriched with what an investor needs to decide.
type Opportunity struct {
	Loan               loanuc.LoanDTO        `json:"loan"`
	BorrowerTrustScore float64               `json:"borrower_trust_score"`
	Collateral         collateral.SummaryDTO `json:"collateral"`
	ExpectedReturn     float64               `json:"expected_return"`
}

type InvestResult struct {
	Loan               loanuc.LoanDTO `json:"loan"`
	NewInvestorBalance float64        `json:"new_investor_balance"`
}
