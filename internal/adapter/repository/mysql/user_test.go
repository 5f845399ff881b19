package mysql

import (
	"context"
	"errors"
	"testing"

	userDomain "lombard-backend/internal/domain/user"
	"lombard-backend/pkg/id"

	"gorm.io/gorm"
)

func TestUserCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	userID := id.NewID32()
	u := &userDomain.User{
		UserID:       userID,
		Name:         "Sari Wulandari",
		Role:         userDomain.RoleBorrower,
		AccountType:  "individual",
		AnnualIncome: 84000,
		KYCVerified:  true,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Name != "Sari Wulandari" || got.Role != userDomain.RoleBorrower || !got.KYCVerified {
		t.Errorf("unexpected user: %+v", got)
	}

	if _, err := repo.GetByUserID(ctx, id.NewID32()); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing user: got %v, want ErrRecordNotFound", err)
	}
}

func TestUserSavePersistsBalance(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &userDomain.User{
		UserID:  id.NewID32(),
		Name:    "Budi Santoso",
		Role:    userDomain.RoleInvestor,
		Balance: 1000000,
	}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	u.Balance = 950000
	if err := repo.Save(ctx, u); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByUserID(ctx, u.UserID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got.Balance != 950000 {
		t.Errorf("balance = %v, want 950000", got.Balance)
	}
}
