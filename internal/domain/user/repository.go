package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	GetByUserID(ctx context.Context, userID string) (*User, error)
	// Row-locked read; must run inside a transaction.
	GetByUserIDForUpdate(ctx context.Context, userID string) (*User, error)
}
