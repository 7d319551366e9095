package user

import "context"

type Repository interface {
	// Create inserts a new user. It returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	ListOverview(ctx context.Context) ([]Overview, error)
}
