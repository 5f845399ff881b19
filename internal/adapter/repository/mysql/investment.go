package mysql

import (
	"context"

	investmentDomain "lombard-backend/internal/domain/investment"

	"gorm.io/gorm"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvestmentRepository) Save(ctx context.Context, inv *investmentDomain.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvestmentRepository) GetByLoanID(ctx context.Context, loanID string) (*investmentDomain.Investment, error) {
	var out investmentDomain.Investment
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

func (r *InvestmentRepository) ListByInvestor(ctx context.Context, investorID string) ([]*investmentDomain.Investment, error) {
	var out []*investmentDomain.Investment
	res := r.db.WithContext(ctx).
		Where("investor_id = ?", investorID).
		Order("id DESC").
		Find(&out)
	return out, res.Error
}
