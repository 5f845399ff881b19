package trust

import "context"

type Repository interface {
	// Append adds a new score row; history is never updated in place.
	Append(ctx context.Context, s *Score) error
	Latest(ctx context.Context, borrowerID string) (*Score, error)
	History(ctx context.Context, borrowerID string) ([]*Score, error)
}
