package place

import "context"

type Repository interface {
	List(ctx context.Context) ([]Place, error)
	GetByID(ctx context.Context, id string) (Place, bool, error)
	Upsert(ctx context.Context, p Place) error
}
