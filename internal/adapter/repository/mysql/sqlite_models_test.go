package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-friendly shadow schemas for tests: same tables and columns as the
// domain models, but without MySQL ENUM column types.

type userSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	UserID       string    `gorm:"size:32;column:user_id"`
	Name         string    `gorm:"column:name"`
	Role         string    `gorm:"type:text;column:role"`
	AccountType  string    `gorm:"column:account_type"`
	Balance      float64   `gorm:"column:balance"`
	AnnualIncome float64   `gorm:"column:annual_income"`
	KYCVerified  bool      `gorm:"column:kyc_verified"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userSQLite) TableName() string { return "users" }

type assetSQLite struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	AssetID       string    `gorm:"size:32;column:asset_id"`
	OwnerID       string    `gorm:"size:32;column:owner_id"`
	DeclaredValue float64   `gorm:"column:declared_value"`
	Currency      string    `gorm:"column:currency"`
	Class         string    `gorm:"type:text;column:class"`
	Status        string    `gorm:"type:text;column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (assetSQLite) TableName() string { return "assets" }

type collateralSQLite struct {
	ID          uint64    `gorm:"primaryKey;column:id"`
	EntryID     string    `gorm:"size:32;column:entry_id"`
	AssetID     string    `gorm:"size:32;column:asset_id"`
	OwnerID     string    `gorm:"size:32;column:owner_id"`
	Token       string    `gorm:"size:36;column:token"`
	LTV         float64   `gorm:"column:ltv"`
	AssetValue  float64   `gorm:"column:asset_value"`
	CreditLimit float64   `gorm:"column:credit_limit"`
	UsedCredit  float64   `gorm:"column:used_credit"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (collateralSQLite) TableName() string { return "collateral_entries" }

type loanSQLite struct {
	ID                 uint64     `gorm:"primaryKey;column:id"`
	LoanID             string     `gorm:"size:32;column:loan_id"`
	BorrowerID         string     `gorm:"size:32;column:borrower_id"`
	InvestorID         *string    `gorm:"size:32;column:investor_id"`
	Principal          float64    `gorm:"column:principal"`
	TenureMonths       int        `gorm:"column:tenure_months"`
	Rate               float64    `gorm:"column:rate"`
	EMI                float64    `gorm:"column:emi"`
	Purpose            string     `gorm:"column:purpose"`
	State              string     `gorm:"type:text;column:state"`
	DisbursedAmount    float64    `gorm:"column:disbursed_amount"`
	TotalRepaid        float64    `gorm:"column:total_repaid"`
	RiskBand           string     `gorm:"column:risk_band"`
	DefaultProbability float64    `gorm:"column:default_probability"`
	Decision           string     `gorm:"column:decision"`
	DecisionReason     string     `gorm:"column:decision_reason"`
	ApprovedAt         *time.Time `gorm:"column:approved_at"`
	DisbursedAt        *time.Time `gorm:"column:disbursed_at"`
	StateUpdatedAt     time.Time  `gorm:"column:state_updated_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type trustScoreSQLite struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	ScoreID      string    `gorm:"size:32;column:score_id"`
	BorrowerID   string    `gorm:"size:32;column:borrower_id"`
	Score        float64   `gorm:"column:score"`
	FactorsJSON  string    `gorm:"column:factors"`
	CalculatedAt time.Time `gorm:"column:calculated_at"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (trustScoreSQLite) TableName() string { return "trust_scores" }

type investmentSQLite struct {
	ID              uint64    `gorm:"primaryKey;column:id"`
	InvestmentID    string    `gorm:"size:32;column:investment_id"`
	LoanID          string    `gorm:"size:32;column:loan_id"`
	InvestorID      string    `gorm:"size:32;column:investor_id"`
	Amount          float64   `gorm:"column:amount"`
	Status          string    `gorm:"type:text;column:status"`
	RecoveredAmount float64   `gorm:"column:recovered_amount"`
	RecoveryPct     float64   `gorm:"column:recovery_pct"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (investmentSQLite) TableName() string { return "investments" }

// openTestDB creates an in-memory sqlite DB with the sqlite-safe schemas.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userSQLite{}, &assetSQLite{}, &collateralSQLite{},
		&loanSQLite{}, &trustScoreSQLite{}, &investmentSQLite{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
