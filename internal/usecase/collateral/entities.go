package collateral

import (
	"time"

	"lombard-backend/internal/domain/asset"
)

type LockInput struct {
	OwnerID       string
	AssetID       string
	DeclaredValue float64
	Currency      string
	Class         asset.Class
}

type EntryDTO struct {
	EntryID         string    `json:"entry_id"`
	AssetID         string    `json:"asset_id"`
	OwnerID         string    `json:"owner_id"`
	CollateralToken string    `json:"collateral_token"`
	LTV             float64   `json:"ltv"`
	AssetValue      float64   `json:"asset_value"`
	CreditLimit     float64   `json:"credit_limit"`
	UsedCredit      float64   `json:"used_credit"`
	CreatedAt       time.Time `json:"created_at"`
}

type SummaryDTO struct {
	EntryCount       int     `json:"entry_count"`
	TotalAssetValue  float64 `json:"total_asset_value"`
	TotalCreditLimit float64 `json:"total_credit_limit"`
	TotalUsedCredit  float64 `json:"total_used_credit"`
	AvailableCredit  float64 `json:"available_credit"`
}
