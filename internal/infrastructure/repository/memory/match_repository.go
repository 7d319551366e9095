package memory

import (
	"context"
	"sort"

	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.places[m.PlaceID]; !ok {
		return match.ErrUnknownPlace
	}
	s.matches[m.ID] = m
	return nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.matches[m.ID]
	if !ok {
		return false, nil
	}
	if _, ok := s.places[m.PlaceID]; !ok {
		return false, match.ErrUnknownPlace
	}
	m.CreatedAt = current.CreatedAt
	s.matches[m.ID] = m
	return true, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	return m, ok, nil
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter, scope match.ConfirmationScope) ([]match.Listing, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := paging.Window(s.filteredMatches(filter), filter.Page)
	out := make([]match.Listing, 0, len(window))
	for _, m := range window {
		row := match.Listing{
			Match:               m,
			Place:               s.places[m.PlaceID],
			ConfirmedAthleteIDs: []string{},
		}
		for key := range s.confirmations {
			if key.matchID != m.ID {
				continue
			}
			row.ConfirmationCount++
			if scope.Includes(key.athleteID) {
				row.ConfirmedAthleteIDs = append(row.ConfirmedAthleteIDs, key.athleteID)
			}
		}
		for key := range s.participations {
			if key.matchID == m.ID {
				row.ParticipationCount++
			}
		}
		sort.Strings(row.ConfirmedAthleteIDs)
		out = append(out, row)
	}
	return out, nil
}

func (r *MatchRepository) Count(_ context.Context, filter match.Filter) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filteredMatches(filter)), nil
}

// filteredMatches must be called with the lock held.
func (s *Store) filteredMatches(filter match.Filter) []match.Match {
	out := make([]match.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if filter.Matches(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Less(out[i], out[j]) {
			return true
		}
		if filter.Less(out[j], out[i]) {
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type ConfirmationRepository struct {
	store *Store
}

// Toggle runs under the write lock, so delete-or-insert is a single step.
func (r *ConfirmationRepository) Toggle(_ context.Context, c match.Confirmation) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pair{athleteID: c.AthleteID, matchID: c.MatchID}
	if _, ok := s.confirmations[key]; ok {
		delete(s.confirmations, key)
		return false, nil
	}
	s.confirmations[key] = c
	return true, nil
}

func (r *ConfirmationRepository) Exists(_ context.Context, athleteID, matchID string) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.confirmations[pair{athleteID: athleteID, matchID: matchID}]
	return ok, nil
}
