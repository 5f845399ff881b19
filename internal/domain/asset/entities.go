package asset

import (
	"errors"
	"time"
)

type Status string

const (
	StatusActive Status = "active"
	StatusLocked Status = "locked"
)

// Class is the closed set of accepted collateral classes. The LTV table is
// exhaustive over it; unknown strings are rejected at the API boundary.
type Class string

const (
	ClassFixedDeposit  Class = "fixed-deposit"
	ClassEquity        Class = "equity"
	ClassPreciousMetal Class = "precious-metal"
	ClassRealEstate    Class = "real-estate"
	ClassFundUnit      Class = "fund-unit"
)

const defaultLTV = 0.50

func (c Class) Valid() bool {
	switch c {
	case ClassFixedDeposit, ClassEquity, ClassPreciousMetal, ClassRealEstate, ClassFundUnit:
		return true
	}
	return false
}

// LTV returns the loan-to-value ratio for the class.
func (c Class) LTV() float64 {
	switch c {
	case ClassFixedDeposit:
		return 0.90
	case ClassEquity:
		return 0.70
	case ClassPreciousMetal:
		return 0.75
	case ClassRealEstate:
		return 0.60
	case ClassFundUnit:
		return 0.65
	default:
		return defaultLTV
	}
}

var (
	ErrNotFound           = errors.New("asset not found")
	ErrAlreadyLocked      = errors.New("asset already locked")
	ErrNotLocked          = errors.New("asset is not locked")
	ErrHasActiveLoan      = errors.New("collateral backs an active loan")
	ErrInsufficientCredit = errors.New("insufficient collateral credit")
)

type Asset struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"-"`
	AssetID       string    `gorm:"size:32;uniqueIndex:ux_assets_asset_id" json:"asset_id"`
	OwnerID       string    `gorm:"size:32;index:idx_assets_owner" json:"owner_id"`
	DeclaredValue float64   `gorm:"type:decimal(18,2)" json:"declared_value"`
	Currency      string    `gorm:"size:3;default:'USD'" json:"currency"`
	Class         Class     `gorm:"type:enum('fixed-deposit','equity','precious-metal','real-estate','fund-unit')" json:"class"`
	Status        Status    `gorm:"type:enum('active','locked');default:'active'" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

// CollateralEntry binds a locked asset to its issued credit limit. It exists
// exactly while the asset is locked.
type CollateralEntry struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	EntryID     string    `gorm:"size:32;uniqueIndex:ux_collateral_entry_id" json:"entry_id"`
	AssetID     string    `gorm:"size:32;uniqueIndex:ux_collateral_asset" json:"asset_id"`
	OwnerID     string    `gorm:"size:32;index:idx_collateral_owner" json:"owner_id"`
	Token       string    `gorm:"size:36;uniqueIndex:ux_collateral_token" json:"collateral_token"`
	LTV         float64   `gorm:"type:decimal(4,2)" json:"ltv"`
	AssetValue  float64   `gorm:"type:decimal(18,2)" json:"asset_value"`
	CreditLimit float64   `gorm:"type:decimal(18,2)" json:"credit_limit"`
	UsedCredit  float64   `gorm:"type:decimal(18,2);default:0" json:"used_credit"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (CollateralEntry) TableName() string { return "collateral_entries" }

func (e *CollateralEntry) Available() float64 { return e.CreditLimit - e.UsedCredit }

// creditEps absorbs float64 noise at the two-decimal currency boundary.
const creditEps = 1e-6

// Reserve consumes amount of the entry's headroom.
func (e *CollateralEntry) Reserve(amount float64) error {
	if amount < 0 {
		return ErrInsufficientCredit
	}
	if e.UsedCredit+amount > e.CreditLimit+creditEps {
		return ErrInsufficientCredit
	}
	e.UsedCredit += amount
	return nil
}

// Release returns amount of previously reserved credit, clamped at zero.
func (e *CollateralEntry) Release(amount float64) {
	e.UsedCredit -= amount
	if e.UsedCredit < 0 {
		e.UsedCredit = 0
	}
}

// ReserveAcross spreads amount over the entries' headroom in order. All-or-
// nothing: entries are untouched when the combined headroom is short.
func ReserveAcross(entries []*CollateralEntry, amount float64) error {
	var available float64
	for _, e := range entries {
		available += e.Available()
	}
	if amount > available+creditEps {
		return ErrInsufficientCredit
	}
	remaining := amount
	for _, e := range entries {
		if remaining <= creditEps {
			break
		}
		take := e.Available()
		if take > remaining {
			take = remaining
		}
		e.UsedCredit += take
		remaining -= take
	}
	return nil
}

// ReleaseAcross gives back amount of reserved credit, draining entries in order.
func ReleaseAcross(entries []*CollateralEntry, amount float64) {
	remaining := amount
	for _, e := range entries {
		if remaining <= creditEps {
			return
		}
		give := e.UsedCredit
		if give > remaining {
			give = remaining
		}
		e.UsedCredit -= give
		remaining -= give
	}
}
