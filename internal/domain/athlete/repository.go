package athlete

import (
	"context"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
)

type Repository interface {
	// Create inserts the athlete and, when account is non-nil, the user it links to, atomically.
	Create(ctx context.Context, a Athlete, account *user.User) error
	Update(ctx context.Context, a Athlete) (bool, error)
	// ToggleActive flips is_active in one write and returns the updated athlete.
	ToggleActive(ctx context.Context, id string, now time.Time) (Athlete, bool, error)
	GetByID(ctx context.Context, id string) (Athlete, bool, error)
	GetByUserID(ctx context.Context, userID string) (Athlete, bool, error)
	List(ctx context.Context, filter Filter) ([]Listing, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListActive(ctx context.Context) ([]Athlete, error)
}
