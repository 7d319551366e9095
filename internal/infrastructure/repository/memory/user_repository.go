package memory

import (
	"context"
	"sort"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userEmailTaken(u.Email, "") {
		return user.ErrDuplicateEmail
	}
	s.users[u.ID] = u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (user.User, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) ListOverview(_ context.Context) ([]user.Overview, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	linked := make(map[string]user.Overview, len(s.athletes))
	for _, a := range s.athletes {
		if a.UserID == "" {
			continue
		}
		linked[a.UserID] = user.Overview{AthleteID: a.ID, AthleteName: a.Name, AthleteActive: a.IsActive}
	}

	out := make([]user.Overview, 0, len(s.users))
	for _, u := range s.users {
		row := linked[u.ID]
		row.User = u
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].User.CreatedAt.Equal(out[j].User.CreatedAt) {
			return out[i].User.CreatedAt.After(out[j].User.CreatedAt)
		}
		return out[i].User.Email < out[j].User.Email
	})
	return out, nil
}
