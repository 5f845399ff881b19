// Package memstore is an in-memory uow.UnitOfWork for usecase tests. Every
// transaction runs against a cloned view of the data and commits by swapping
// the view in, so a failed transaction leaves no partial state, matching the
// rollback behavior of the real gorm unit of work. A single mutex serializes
// transactions the way row locks serialize them in MySQL.
package memstore

import (
	"context"
	"errors"
	"sync"

	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/investment"
	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/trust"
	"lombard-backend/internal/domain/uow"
	"lombard-backend/internal/domain/user"

	"gorm.io/gorm"
)

var _ uow.UnitOfWork = (*Store)(nil)

type data struct {
	users       map[string]*user.User
	assets      map[string]*asset.Asset
	collateral  map[string]*asset.CollateralEntry // keyed by asset id
	loans       map[string]*loan.Loan
	scores      []*trust.Score
	investments map[string]*investment.Investment // keyed by loan id
	nextID      uint64
}

type Store struct {
	mu sync.Mutex
	d  data
}

func New() *Store {
	return &Store{d: data{
		users:       map[string]*user.User{},
		assets:      map[string]*asset.Asset{},
		collateral:  map[string]*asset.CollateralEntry{},
		loans:       map[string]*loan.Loan{},
		investments: map[string]*investment.Investment{},
		nextID:      1,
	}}
}

func (d data) clone() data {
	c := data{
		users:       make(map[string]*user.User, len(d.users)),
		assets:      make(map[string]*asset.Asset, len(d.assets)),
		collateral:  make(map[string]*asset.CollateralEntry, len(d.collateral)),
		loans:       make(map[string]*loan.Loan, len(d.loans)),
		scores:      make([]*trust.Score, len(d.scores)),
		investments: make(map[string]*investment.Investment, len(d.investments)),
		nextID:      d.nextID,
	}
	for k, v := range d.users {
		cp := *v
		c.users[k] = &cp
	}
	for k, v := range d.assets {
		cp := *v
		c.assets[k] = &cp
	}
	for k, v := range d.collateral {
		cp := *v
		c.collateral[k] = &cp
	}
	for k, v := range d.loans {
		cp := *v
		c.loans[k] = &cp
	}
	copy(c.scores, d.scores)
	for k, v := range d.investments {
		cp := *v
		c.investments[k] = &cp
	}
	return c
}

func reposFor(d *data) uow.Repos {
	return uow.Repos{
		Users:       &userRepo{d: d},
		Assets:      &assetRepo{d: d},
		Collateral:  &collateralRepo{d: d},
		Loans:       &loanRepo{d: d},
		TrustScores: &trustRepo{d: d},
		Investments: &investmentRepo{d: d},
	}
}

func (s *Store) WithinTx(_ context.Context, fn func(r uow.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.d.clone()
	if err := fn(reposFor(&view)); err != nil {
		return err
	}
	s.d = view
	return nil
}

func (s *Store) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.d.clone()
	r := reposFor(&view)
	l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return loan.ErrNotFound
		}
		return err
	}
	if err := fn(r, l); err != nil {
		return err
	}
	s.d = view
	return nil
}

// Seed helpers bypass transactions; use them for test fixtures only.

func (s *Store) SeedUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	cp.ID = s.d.nextID
	s.d.nextID++
	s.d.users[cp.UserID] = &cp
}

func (s *Store) SeedAsset(a *asset.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	cp.ID = s.d.nextID
	s.d.nextID++
	s.d.assets[cp.AssetID] = &cp
}

func (s *Store) SeedCollateral(e *asset.CollateralEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	cp.ID = s.d.nextID
	s.d.nextID++
	s.d.collateral[cp.AssetID] = &cp
}

func (s *Store) SeedLoan(l *loan.Loan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *l
	cp.ID = s.d.nextID
	s.d.nextID++
	s.d.loans[cp.LoanID] = &cp
}

func (s *Store) SeedScore(sc *trust.Score) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sc
	cp.ID = s.d.nextID
	s.d.nextID++
	s.d.scores = append(s.d.scores, &cp)
}

// Snapshot getters return copies of current committed state.

func (s *Store) User(userID string) (*user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.d.users[userID]
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *Store) Asset(assetID string) (*asset.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.d.assets[assetID]
	if !ok {
		return nil, false
	}
	cp := *a
	return &cp, true
}

func (s *Store) Collateral(assetID string) (*asset.CollateralEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.d.collateral[assetID]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

func (s *Store) Loan(loanID string) (*loan.Loan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.d.loans[loanID]
	if !ok {
		return nil, false
	}
	cp := *l
	return &cp, true
}

func (s *Store) Investment(loanID string) (*investment.Investment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.d.investments[loanID]
	if !ok {
		return nil, false
	}
	cp := *inv
	return &cp, true
}

func (s *Store) Scores(borrowerID string) []*trust.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*trust.Score
	for _, sc := range s.d.scores {
		if sc.BorrowerID == borrowerID {
			cp := *sc
			out = append(out, &cp)
		}
	}
	return out
}
