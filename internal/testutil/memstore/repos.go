package memstore

import (
	"context"
	"fmt"
	"sort"

	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/investment"
	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/user"

	"gorm.io/gorm"
)

// The repos mirror the gorm-backed ones: reads hand out copies, writes go
// through Save, and missing rows surface gorm.ErrRecordNotFound so the
// usecases' error mapping is exercised the same way in tests.

type userRepo struct{ d *data }

func (r *userRepo) Create(_ context.Context, u *user.User) error {
	if _, ok := r.d.users[u.UserID]; ok {
		return fmt.Errorf("memstore: duplicate user %s", u.UserID)
	}
	cp := *u
	cp.ID = r.d.nextID
	r.d.nextID++
	r.d.users[cp.UserID] = &cp
	u.ID = cp.ID
	return nil
}

func (r *userRepo) Save(_ context.Context, u *user.User) error {
	cp := *u
	r.d.users[cp.UserID] = &cp
	return nil
}

func (r *userRepo) GetByUserID(_ context.Context, userID string) (*user.User, error) {
	u, ok := r.d.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) GetByUserIDForUpdate(ctx context.Context, userID string) (*user.User, error) {
	return r.GetByUserID(ctx, userID)
}

type assetRepo struct{ d *data }

func (r *assetRepo) Create(_ context.Context, a *asset.Asset) error {
	if _, ok := r.d.assets[a.AssetID]; ok {
		return fmt.Errorf("memstore: duplicate asset %s", a.AssetID)
	}
	cp := *a
	cp.ID = r.d.nextID
	r.d.nextID++
	r.d.assets[cp.AssetID] = &cp
	a.ID = cp.ID
	return nil
}

func (r *assetRepo) Save(_ context.Context, a *asset.Asset) error {
	cp := *a
	r.d.assets[cp.AssetID] = &cp
	return nil
}

func (r *assetRepo) GetByAssetID(_ context.Context, assetID string) (*asset.Asset, error) {
	a, ok := r.d.assets[assetID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *assetRepo) GetByAssetIDForUpdate(ctx context.Context, assetID string) (*asset.Asset, error) {
	return r.GetByAssetID(ctx, assetID)
}

type collateralRepo struct{ d *data }

func (r *collateralRepo) Create(_ context.Context, e *asset.CollateralEntry) error {
	if _, ok := r.d.collateral[e.AssetID]; ok {
		return fmt.Errorf("memstore: asset %s already collateralized", e.AssetID)
	}
	cp := *e
	cp.ID = r.d.nextID
	r.d.nextID++
	r.d.collateral[cp.AssetID] = &cp
	e.ID = cp.ID
	return nil
}

func (r *collateralRepo) Save(_ context.Context, e *asset.CollateralEntry) error {
	cp := *e
	r.d.collateral[cp.AssetID] = &cp
	return nil
}

func (r *collateralRepo) GetByAssetID(_ context.Context, assetID string) (*asset.CollateralEntry, error) {
	e, ok := r.d.collateral[assetID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *collateralRepo) DeleteByAssetID(_ context.Context, assetID string) error {
	delete(r.d.collateral, assetID)
	return nil
}

func (r *collateralRepo) ListByOwner(_ context.Context, ownerID string) ([]*asset.CollateralEntry, error) {
	var out []*asset.CollateralEntry
	for _, e := range r.d.collateral {
		if e.OwnerID == ownerID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *collateralRepo) ListByOwnerForUpdate(ctx context.Context, ownerID string) ([]*asset.CollateralEntry, error) {
	return r.ListByOwner(ctx, ownerID)
}

type loanRepo struct{ d *data }

func (r *loanRepo) Create(_ context.Context, l *loan.Loan) error {
	if _, ok := r.d.loans[l.LoanID]; ok {
		return fmt.Errorf("memstore: duplicate loan %s", l.LoanID)
	}
	cp := *l
	cp.ID = r.d.nextID
	r.d.nextID++
	r.d.loans[cp.LoanID] = &cp
	l.ID = cp.ID
	return nil
}

func (r *loanRepo) Save(_ context.Context, l *loan.Loan) error {
	cp := *l
	r.d.loans[cp.LoanID] = &cp
	return nil
}

func (r *loanRepo) GetByLoanID(_ context.Context, loanID string) (*loan.Loan, error) {
	l, ok := r.d.loans[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *loanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loan.Loan, error) {
	return r.GetByLoanID(ctx, loanID)
}

func (r *loanRepo) ListOpenForFunding(_ context.Context) ([]*loan.Loan, error) {
	var out []*loan.Loan
	for _, l := range r.d.loans {
		if l.State == loan.StateListed && l.InvestorID == nil {
			cp := *l
			out = append(out, &cp)
		}
	}
	// newest first
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *loanRepo) ListByBorrower(_ context.Context, borrowerID string) ([]*loan.Loan, error) {
	var out []*loan.Loan
	for _, l := range r.d.loans {
		if l.BorrowerID == borrowerID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *loanRepo) ListActiveByBorrower(_ context.Context, borrowerID string) ([]*loan.Loan, error) {
	var out []*loan.Loan
	for _, l := range r.d.loans {
		if l.BorrowerID == borrowerID && l.State == loan.StateActive {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type trustRepo struct{ d *data }

func (r *trustRepo) Append(_ context.Context, s *trust.Score) error {
	cp := *s
	cp.ID = r.d.nextID
	r.d.nextID++
	r.d.scores = append(r.d.scores, &cp)
	s.ID = cp.ID
	return nil
}

func (r *trustRepo) Latest(_ context.Context, borrowerID string) (*trust.Score, error) {
	var latest *trust.Score
	for _, s := range r.d.scores {
		if s.BorrowerID != borrowerID {
			continue
		}
		if latest == nil || s.ID > latest.ID {
			latest = s
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *trustRepo) History(_ context.Context, borrowerID string) ([]*trust.Score, error) {
	var out []*trust.Score
	for _, s := range r.d.scores {
		if s.BorrowerID == borrowerID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type investmentRepo struct{ d *data }

func (r *investmentRepo) Create(_ context.Context, inv *investment.Investment) error {
	if _, ok := r.d.investments[inv.LoanID]; ok {
		return fmt.Errorf("memstore: loan %s already has a settlement record", inv.LoanID)
	}
	cp := *inv
	cp.ID = r.d.nextID
	r.d.nextID++
	r.d.investments[cp.LoanID] = &cp
	inv.ID = cp.ID
	return nil
}

func (r *investmentRepo) Save(_ context.Context, inv *investment.Investment) error {
	cp := *inv
	r.d.investments[cp.LoanID] = &cp
	return nil
}

func (r *investmentRepo) GetByLoanID(_ context.Context, loanID string) (*investment.Investment, error) {
	inv, ok := r.d.investments[loanID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *investmentRepo) ListByInvestor(_ context.Context, investorID string) ([]*investment.Investment, error) {
	var out []*investment.Investment
	for _, inv := range r.d.investments {
		if inv.InvestorID == investorID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
