package mysql

import (
	"context"

	trustDomain "lombard-backend/internal/domain/trust"

	"gorm.io/gorm"
)

type TrustScoreRepository struct{ db *gorm.DB }

func NewTrustScoreRepository(db *gorm.DB) *TrustScoreRepository {
	return &TrustScoreRepository{db: db}
}

func (r *TrustScoreRepository) Append(ctx context.Context, s *trustDomain.Score) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *TrustScoreRepository) Latest(ctx context.Context, borrowerID string) (*trustDomain.Score, error) {
	var out trustDomain.Score
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("calculated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *TrustScoreRepository) History(ctx context.Context, borrowerID string) ([]*trustDomain.Score, error) {
	var out []*trustDomain.Score
	res := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).
		Order("calculated_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
