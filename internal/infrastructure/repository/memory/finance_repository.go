package memory

import (
	"context"
	"sort"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

type PendingRepository struct {
	store *Store
}

func (r *PendingRepository) Create(_ context.Context, p finance.Pending) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.athletes[p.AthleteID]; !ok {
		return finance.ErrUnknownAthlete
	}
	p.AthleteName = ""
	s.pendings[p.ID] = p.Clone()
	return nil
}

func (r *PendingRepository) GetByID(_ context.Context, id string) (finance.Pending, bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pendings[id]
	if !ok {
		return finance.Pending{}, false, nil
	}
	return s.withAthleteName(p), true, nil
}

func (r *PendingRepository) MarkPaid(_ context.Context, id string, paymentDate, now time.Time) (finance.Pending, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.pendings[id]
	if !ok {
		return finance.Pending{}, false, nil
	}
	paid, err := current.MarkPaid(paymentDate, now)
	if err != nil {
		return finance.Pending{}, true, err
	}
	s.pendings[id] = paid.Clone()
	return s.withAthleteName(paid), true, nil
}

func (r *PendingRepository) UpdateDetails(_ context.Context, p finance.Pending) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.pendings[p.ID]
	if !ok {
		return false, nil
	}
	if current.IsPaid() {
		return true, finance.ErrInvalidTransition
	}
	current.Amount = p.Amount
	current.DueDate = p.DueDate
	current.Description = p.Description
	current.UpdatedAt = p.UpdatedAt
	s.pendings[p.ID] = current
	return true, nil
}

func (r *PendingRepository) List(_ context.Context, filter finance.Filter) ([]finance.Pending, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return paging.Window(s.filteredPendings(filter), filter.Page), nil
}

func (r *PendingRepository) Count(_ context.Context, filter finance.Filter) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filteredPendings(filter)), nil
}

func (r *PendingRepository) ListByAthlete(_ context.Context, athleteID string) ([]finance.Pending, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filteredPendings(finance.Filter{Type: finance.ViewAll, AthleteID: athleteID}), nil
}

// filteredPendings must be called with the lock held.
func (s *Store) filteredPendings(filter finance.Filter) []finance.Pending {
	out := make([]finance.Pending, 0, len(s.pendings))
	for _, p := range s.pendings {
		if filter.MatchesPending(p) {
			out = append(out, s.withAthleteName(p))
		}
	}
	sortPendings(out)
	return out
}

func (s *Store) withAthleteName(p finance.Pending) finance.Pending {
	out := p.Clone()
	out.AthleteName = s.athletes[p.AthleteID].Name
	return out
}

func sortPendings(items []finance.Pending) {
	sort.Slice(items, func(i, j int) bool {
		if finance.LessPending(items[i], items[j]) {
			return true
		}
		if finance.LessPending(items[j], items[i]) {
			return false
		}
		return items[i].ID < items[j].ID
	})
}

type CashFlowRepository struct {
	store *Store
}

func (r *CashFlowRepository) Create(_ context.Context, c finance.CashFlow) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cashFlows[c.ID] = c
	return nil
}

func (r *CashFlowRepository) List(_ context.Context, filter finance.Filter) ([]finance.CashFlow, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return paging.Window(s.filteredCashFlows(filter), filter.Page), nil
}

func (r *CashFlowRepository) Count(_ context.Context, filter finance.Filter) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filteredCashFlows(filter)), nil
}

// filteredCashFlows must be called with the lock held.
func (s *Store) filteredCashFlows(filter finance.Filter) []finance.CashFlow {
	out := make([]finance.CashFlow, 0, len(s.cashFlows))
	for _, c := range s.cashFlows {
		if filter.MatchesCashFlow(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if finance.LessCashFlow(out[i], out[j]) {
			return true
		}
		if finance.LessCashFlow(out[j], out[i]) {
			return false
		}
		return out[i].ID < out[j].ID
	})
	return out
}

type LedgerRepository struct {
	store *Store
}

// Ledger copies both collections under one read lock.
func (r *LedgerRepository) Ledger(_ context.Context) ([]finance.Pending, []finance.CashFlow, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	pendings := make([]finance.Pending, 0, len(s.pendings))
	for _, p := range s.pendings {
		pendings = append(pendings, s.withAthleteName(p))
	}
	sortPendings(pendings)

	flows := make([]finance.CashFlow, 0, len(s.cashFlows))
	for _, c := range s.cashFlows {
		flows = append(flows, c)
	}
	return pendings, flows, nil
}
