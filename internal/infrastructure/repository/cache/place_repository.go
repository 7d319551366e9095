package cache

import (
	"context"

	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	basecache "github.com/nilosmferreira/damasios-ai/internal/platform/cache"
)

const placeListKey = "place:list"

// PlaceRepository can serve the place list from memory when its store has a ttl. Lookups by id
// always reach the underlying store, so a place written by another process is found at once.
type PlaceRepository struct {
	next  place.Repository
	cache *basecache.Store[[]place.Place]
}

func NewPlaceRepository(next place.Repository, cache *basecache.Store[[]place.Place]) *PlaceRepository {
	return &PlaceRepository{next: next, cache: cache}
}

func (r *PlaceRepository) List(ctx context.Context) ([]place.Place, error) {
	items, err := r.cache.GetOrLoad(ctx, placeListKey, func(ctx context.Context) ([]place.Place, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]place.Place(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]place.Place(nil), items...), nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (place.Place, bool, error) {
	return r.next.GetByID(ctx, id)
}

func (r *PlaceRepository) Upsert(ctx context.Context, p place.Place) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, placeListKey)
	return nil
}
