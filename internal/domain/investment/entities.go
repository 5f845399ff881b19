package investment

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("investment not found")

type Status string

const (
	StatusActive    Status = "active"
	StatusRepaid    Status = "repaid"
	StatusDefaulted Status = "defaulted"
)

// Investment is the settlement record for a funded loan. It is created lazily
// at the first settlement event and mirrors the loan outcome.
type Investment struct {
	ID              uint64    `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID    string    `gorm:"size:32;uniqueIndex:ux_investments_investment_id" json:"investment_id"`
	LoanID          string    `gorm:"size:32;uniqueIndex:ux_investments_loan" json:"loan_id"`
	InvestorID      string    `gorm:"size:32;index:idx_investments_investor" json:"investor_id"`
	Amount          float64   `gorm:"type:decimal(18,2)" json:"amount"`
	Status          Status    `gorm:"type:enum('active','repaid','defaulted');default:'active'" json:"status"`
	RecoveredAmount float64   `gorm:"type:decimal(18,2);default:0" json:"recovered_amount"`
	RecoveryPct     float64   `gorm:"type:decimal(7,2);default:0" json:"recovery_percentage"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Investment) TableName() string { return "investments" }
