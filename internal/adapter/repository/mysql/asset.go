package mysql

import (
	"context"

	assetDomain "lombard-backend/internal/domain/asset"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository struct{ db *gorm.DB }

func NewAssetRepository(db *gorm.DB) *AssetRepository { return &AssetRepository{db: db} }

func (r *AssetRepository) Create(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssetRepository) Save(ctx context.Context, a *assetDomain.Asset) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AssetRepository) GetByAssetID(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *AssetRepository) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*assetDomain.Asset, error) {
	var out assetDomain.Asset
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("asset_id = ?", assetID).
		First(&out)
	return &out, res.Error
}

type CollateralRepository struct{ db *gorm.DB }

func NewCollateralRepository(db *gorm.DB) *CollateralRepository {
	return &CollateralRepository{db: db}
}

func (r *CollateralRepository) Create(ctx context.Context, e *assetDomain.CollateralEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *CollateralRepository) Save(ctx context.Context, e *assetDomain.CollateralEntry) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *CollateralRepository) GetByAssetID(ctx context.Context, assetID string) (*assetDomain.CollateralEntry, error) {
	var out assetDomain.CollateralEntry
	res := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&out)
	return &out, res.Error
}

func (r *CollateralRepository) DeleteByAssetID(ctx context.Context, assetID string) error {
	return r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Delete(&assetDomain.CollateralEntry{}).Error
}

func (r *CollateralRepository) ListByOwner(ctx context.Context, ownerID string) ([]*assetDomain.CollateralEntry, error) {
	var out []*assetDomain.CollateralEntry
	res := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *CollateralRepository) ListByOwnerForUpdate(ctx context.Context, ownerID string) ([]*assetDomain.CollateralEntry, error) {
	var out []*assetDomain.CollateralEntry
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
