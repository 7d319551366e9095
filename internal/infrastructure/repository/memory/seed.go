package memory

import (
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
)

// NewSeededStore returns a store holding the default court, the same reference data the seed
// command writes to postgres.
func NewSeededStore() *Store {
	s := NewStore()
	p := place.Default()
	s.places[p.ID] = p
	s.placeOrder = append(s.placeOrder, p.ID)
	return s
}
