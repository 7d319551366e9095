package match

import "context"

type Repository interface {
	Create(ctx context.Context, m Match) error
	Update(ctx context.Context, m Match) (bool, error)
	GetByID(ctx context.Context, id string) (Match, bool, error)
	// List returns matching rows; scope decides which confirmations fill ConfirmedAthleteIDs.
	List(ctx context.Context, filter Filter, scope ConfirmationScope) ([]Listing, error)
	Count(ctx context.Context, filter Filter) (int, error)
}

type ConfirmationRepository interface {
	// Toggle deletes the (athlete, match) confirmation when present and inserts c otherwise,
	// as one atomic store operation. It reports whether the pair is confirmed afterwards.
	Toggle(ctx context.Context, c Confirmation) (bool, error)
	Exists(ctx context.Context, athleteID, matchID string) (bool, error)
}
