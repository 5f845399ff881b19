package asset

import "context"

type AssetRepository interface {
	Create(ctx context.Context, a *Asset) error
	Save(ctx context.Context, a *Asset) error
	GetByAssetID(ctx context.Context, assetID string) (*Asset, error)
	GetByAssetIDForUpdate(ctx context.Context, assetID string) (*Asset, error)
}

type CollateralRepository interface {
	Create(ctx context.Context, e *CollateralEntry) error
	Save(ctx context.Context, e *CollateralEntry) error
	GetByAssetID(ctx context.Context, assetID string) (*CollateralEntry, error)
	DeleteByAssetID(ctx context.Context, assetID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]*CollateralEntry, error)
	// Row-locked list; serializes credit checks against concurrent reserves.
	ListByOwnerForUpdate(ctx context.Context, ownerID string) ([]*CollateralEntry, error)
}
