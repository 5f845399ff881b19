package user

import (
	"errors"
	"time"
)

type Role string

const (
	RoleBorrower Role = "borrower"
	RoleInvestor Role = "investor"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBorrower, RoleInvestor, RoleAdmin:
		return true
	}
	return false
}

var (
	ErrNotFound            = errors.New("user not found")
	ErrNotInvestorRole     = errors.New("account is not an investor")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrForbidden           = errors.New("forbidden")
)

type User struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID       string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name         string    `gorm:"size:128" json:"name"`
	Role         Role      `gorm:"type:enum('borrower','investor','admin');default:'borrower'" json:"role"`
	AccountType  string    `gorm:"size:32" json:"account_type"`
	Balance      float64   `gorm:"type:decimal(18,2);default:0" json:"balance"`
	AnnualIncome float64   `gorm:"type:decimal(18,2);default:0" json:"annual_income"`
	KYCVerified  bool      `gorm:"column:kyc_verified;default:false" json:"kyc_verified"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
