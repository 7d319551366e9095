package memory

import (
	"context"
	"sort"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

type AthleteRepository struct {
	store *Store
}

func (r *AthleteRepository) Create(_ context.Context, a athlete.Athlete, account *user.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if account != nil {
		if s.userEmailTaken(account.Email, "") {
			return user.ErrDuplicateEmail
		}
		a.UserID = account.ID
	}
	if s.athleteEmailTaken(a.Email, "") {
		return athlete.ErrDuplicateEmail
	}
	if a.UserID != "" {
		for _, existing := range s.athletes {
			if existing.UserID == a.UserID {
				return athlete.ErrUserAlreadyLinked
			}
		}
	}

	if account != nil {
		s.users[account.ID] = *account
	}
	s.athletes[a.ID] = a.Clone()
	return nil
}

func (r *AthleteRepository) Update(_ context.Context, a athlete.Athlete) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.athletes[a.ID]
	if !ok {
		return false, nil
	}
	if s.athleteEmailTaken(a.Email, a.ID) {
		return false, athlete.ErrDuplicateEmail
	}

	next := a.Clone()
	next.UserID = current.UserID
	next.CreatedAt = current.CreatedAt
	s.athletes[a.ID] = next
	return true, nil
}

func (r *AthleteRepository) ToggleActive(_ context.Context, id string, now time.Time) (athlete.Athlete, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.athletes[id]
	if !ok {
		return athlete.Athlete{}, false, nil
	}
	a.IsActive = !a.IsActive
	a.UpdatedAt = now
	s.athletes[id] = a
	return a.Clone(), true, nil
}

func (r *AthleteRepository) GetByID(_ context.Context, id string) (athlete.Athlete, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.athletes[id]
	if !ok {
		return athlete.Athlete{}, false, nil
	}
	return a.Clone(), true, nil
}

func (r *AthleteRepository) GetByUserID(_ context.Context, userID string) (athlete.Athlete, bool, error) {
	if userID == "" {
		return athlete.Athlete{}, false, nil
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.athletes {
		if a.UserID == userID {
			return a.Clone(), true, nil
		}
	}
	return athlete.Athlete{}, false, nil
}

func (r *AthleteRepository) List(_ context.Context, filter athlete.Filter) ([]athlete.Listing, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return paging.Window(s.filteredAthletes(filter), filter.Page), nil
}

func (r *AthleteRepository) Count(_ context.Context, filter athlete.Filter) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filteredAthletes(filter)), nil
}

func (r *AthleteRepository) ListActive(_ context.Context) ([]athlete.Athlete, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]athlete.Athlete, 0, len(s.athletes))
	for _, a := range s.athletes {
		if a.IsActive {
			out = append(out, a.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// filteredAthletes must be called with the lock held.
func (s *Store) filteredAthletes(filter athlete.Filter) []athlete.Listing {
	out := make([]athlete.Listing, 0, len(s.athletes))
	for _, a := range s.athletes {
		row := s.athleteListing(a)
		if filter.Matches(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		left, right := out[i].Athlete, out[j].Athlete
		if !left.CreatedAt.Equal(right.CreatedAt) {
			return left.CreatedAt.After(right.CreatedAt)
		}
		return left.ID < right.ID
	})
	return out
}

func (s *Store) athleteListing(a athlete.Athlete) athlete.Listing {
	row := athlete.Listing{Athlete: a.Clone()}
	if u, ok := s.users[a.UserID]; ok {
		row.UserEmail = u.Email
		row.UserRole = string(u.Role)
	}
	for _, c := range s.confirmations {
		if c.AthleteID == a.ID {
			row.ConfirmationCount++
		}
	}
	for key := range s.participations {
		if key.athleteID == a.ID {
			row.ParticipationCount++
		}
	}
	for _, p := range s.pendings {
		if p.AthleteID == a.ID && p.Status == finance.StatusPending {
			row.PendingCount++
		}
	}
	return row
}
