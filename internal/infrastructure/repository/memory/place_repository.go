package memory

import (
	"context"

	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
)

type PlaceRepository struct {
	store *Store
}

func (r *PlaceRepository) List(_ context.Context) ([]place.Place, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]place.Place, 0, len(s.placeOrder))
	for _, id := range s.placeOrder {
		out = append(out, s.places[id])
	}
	return out, nil
}

func (r *PlaceRepository) GetByID(_ context.Context, id string) (place.Place, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.places[id]
	return p, ok, nil
}

func (r *PlaceRepository) Upsert(_ context.Context, p place.Place) error {
	if err := p.Validate(); err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.places[p.ID]; !exists {
		s.placeOrder = append(s.placeOrder, p.ID)
	}
	s.places[p.ID] = p
	return nil
}
