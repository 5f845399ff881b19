package collateral

import (
	"context"
	"errors"
	"fmt"

	"lombard-backend/internal/adapter/notification"
	"lombard-backend/internal/domain/asset"
	"lombard-backend/internal/domain/loan"
	"lombard-backend/internal/domain/uow"
	"lombard-backend/internal/domain/user"
	"lombard-backend/pkg/id"
	"lombard-backend/pkg/money"

	"gorm.io/gorm"
)

type Usecase struct {
	uw   uow.UnitOfWork
	sink notification.Sink
}

func NewUsecase(uw uow.UnitOfWork, sink notification.Sink) *Usecase {
	return &Usecase{uw: uw, sink: sink}
}

func (u *Usecase) Lock(ctx context.Context, in LockInput) (*EntryDTO, error) {
	if in.DeclaredValue <= 0 {
		return nil, loan.ErrInvalidAmount
	}
	if !in.Class.Valid() {
		return nil, fmt.Errorf("unknown asset class %q", in.Class)
	}

	var dto *EntryDTO
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.GetByAssetIDForUpdate(ctx, in.AssetID)
		switch {
		case err == nil:
			if a.OwnerID != in.OwnerID {
				return user.ErrForbidden
			}
			if a.Status == asset.StatusLocked {
				return asset.ErrAlreadyLocked
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// First sight of this asset: register it under the caller.
			a = &asset.Asset{
				AssetID:       in.AssetID,
				OwnerID:       in.OwnerID,
				DeclaredValue: in.DeclaredValue,
				Currency:      in.Currency,
				Class:         in.Class,
				Status:        asset.StatusActive,
			}
			if err := r.Assets.Create(ctx, a); err != nil {
				return err
			}
		default:
			return err
		}

		entry := &asset.CollateralEntry{
			EntryID:     id.NewID32(),
			AssetID:     a.AssetID,
			OwnerID:     a.OwnerID,
			Token:       id.NewToken(),
			LTV:         in.Class.LTV(),
			AssetValue:  a.DeclaredValue,
			CreditLimit: money.Round2(a.DeclaredValue * in.Class.LTV()),
			UsedCredit:  0,
		}
		if err := r.Collateral.Create(ctx, entry); err != nil {
			return err
		}

		a.Status = asset.StatusLocked
		if err := r.Assets.Save(ctx, a); err != nil {
			return err
		}

		dto = entryToDTO(entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notification.Dispatch(u.sink, notification.Event{
		UserID:   in.OwnerID,
		Type:     notification.TypeCollateralLocked,
		Title:    "Collateral locked",
		Message:  fmt.Sprintf("Asset %s locked; credit limit %.2f issued", in.AssetID, dto.CreditLimit),
		Data:     map[string]any{"asset_id": in.AssetID, "credit_limit": dto.CreditLimit},
		Priority: notification.PriorityNormal,
	})
	return dto, nil
}

func (u *Usecase) Unlock(ctx context.Context, ownerID, assetID string) error {
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Assets.GetByAssetIDForUpdate(ctx, assetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return asset.ErrNotFound
			}
			return err
		}
		if a.OwnerID != ownerID {
			return user.ErrForbidden
		}
		if a.Status != asset.StatusLocked {
			return asset.ErrNotLocked
		}

		// Unlocking is forbidden while any loan funded against the owner's
		// collateral is still active. Terminal loans (repaid, rejected,
		// defaulted) do not block: a defaulted loan's reservation was
		// consumed by liquidation and is reconciled externally before the
		// owner reaches this call.
		active, err := r.Loans.ListActiveByBorrower(ctx, ownerID)
		if err != nil {
			return err
		}
		if len(active) > 0 {
			return asset.ErrHasActiveLoan
		}

		if err := r.Collateral.DeleteByAssetID(ctx, assetID); err != nil {
			return err
		}
		a.Status = asset.StatusActive
		return r.Assets.Save(ctx, a)
	})
	if err != nil {
		return err
	}

	notification.Dispatch(u.sink, notification.Event{
		UserID:   ownerID,
		Type:     notification.TypeCollateralUnlocked,
		Title:    "Collateral released",
		Message:  fmt.Sprintf("Asset %s unlocked", assetID),
		Data:     map[string]any{"asset_id": assetID},
		Priority: notification.PriorityNormal,
	})
	return nil
}

// AvailableCredit sums credit headroom over all of the owner's entries.
func (u *Usecase) AvailableCredit(ctx context.Context, ownerID string) (float64, error) {
	var available float64
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		entries, err := r.Collateral.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			available += e.Available()
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return money.Round2(available), nil
}

// Summary aggregates the owner's collateral position for enrichment.
func (u *Usecase) Summary(ctx context.Context, ownerID string) (*SummaryDTO, error) {
	var s SummaryDTO
	err := u.uw.WithinTx(ctx, func(r uow.Repos) error {
		entries, err := r.Collateral.ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		s = Summarize(entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Summarize folds collateral entries into a position summary.
func Summarize(entries []*asset.CollateralEntry) SummaryDTO {
	var s SummaryDTO
	for _, e := range entries {
		s.EntryCount++
		s.TotalAssetValue += e.AssetValue
		s.TotalCreditLimit += e.CreditLimit
		s.TotalUsedCredit += e.UsedCredit
	}
	s.TotalAssetValue = money.Round2(s.TotalAssetValue)
	s.TotalCreditLimit = money.Round2(s.TotalCreditLimit)
	s.TotalUsedCredit = money.Round2(s.TotalUsedCredit)
	s.AvailableCredit = money.Round2(s.TotalCreditLimit - s.TotalUsedCredit)
	return s
}

func entryToDTO(e *asset.CollateralEntry) *EntryDTO {
	return &EntryDTO{
		EntryID:         e.EntryID,
		AssetID:         e.AssetID,
		OwnerID:         e.OwnerID,
		CollateralToken: e.Token,
		LTV:             e.LTV,
		AssetValue:      e.AssetValue,
		CreditLimit:     e.CreditLimit,
		UsedCredit:      e.UsedCredit,
		CreatedAt:       e.CreatedAt,
	}
}
