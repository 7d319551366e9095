package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/sourcegraph/conc/pool"
)

// Section is a dashboard card the caller may open.
type Section string

const (
	SectionAthletes   Section = "athletes"
	SectionMatches    Section = "matches"
	SectionFinance    Section = "finance"
	SectionUsers      Section = "users"
	SectionPendencies Section = "pendencies"
)

type Dashboard struct {
	User            user.Principal
	Sections        []Section
	ActiveAthletes  int
	UpcomingMatches int
	// Summary is the global ledger for administrators and the caller's own pendencies for athletes.
	Summary *finance.Summary
}

type DashboardService struct {
	athletes athlete.Repository
	matches  match.Repository
	pendings finance.PendingRepository
	ledger   finance.LedgerReader
	now      func() time.Time
}

func NewDashboardService(
	athletes athlete.Repository,
	matches match.Repository,
	pendings finance.PendingRepository,
	ledger finance.LedgerReader,
) *DashboardService {
	return &DashboardService{
		athletes: athletes,
		matches:  matches,
		pendings: pendings,
		ledger:   ledger,
		now:      time.Now,
	}
}

func (s *DashboardService) Get(ctx context.Context, actor user.Principal) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Get")
	defer span.End()

	if actor.UserID == "" {
		return Dashboard{}, ErrUnauthenticated
	}

	out := Dashboard{User: actor, Sections: sectionsFor(actor.Role)}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		total, err := s.athletes.Count(ctx, athlete.Filter{Status: athlete.StatusActive, Page: paging.Default()})
		if err != nil {
			return fmt.Errorf("count active athletes: %w", err)
		}
		out.ActiveAthletes = total
		return nil
	})
	p.Go(func(ctx context.Context) error {
		total, err := s.matches.Count(ctx, match.Filter{
			Status: match.StatusUpcoming,
			Today:  match.Day(s.now()),
			Page:   paging.Default(),
		})
		if err != nil {
			return fmt.Errorf("count upcoming matches: %w", err)
		}
		out.UpcomingMatches = total
		return nil
	})
	p.Go(func(ctx context.Context) error {
		summary, err := s.summaryFor(ctx, actor)
		if err != nil {
			return err
		}
		out.Summary = summary
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	return out, nil
}

func (s *DashboardService) summaryFor(ctx context.Context, actor user.Principal) (*finance.Summary, error) {
	if actor.IsAdmin() {
		pendings, flows, err := s.ledger.Ledger(ctx)
		if err != nil {
			return nil, fmt.Errorf("load ledger: %w", err)
		}
		summary := finance.Summarize(pendings, flows)
		return &summary, nil
	}

	own, exists, err := s.athletes.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("get caller athlete: %w", err)
	}
	if !exists {
		return nil, nil
	}
	items, err := s.pendings.ListByAthlete(ctx, own.ID)
	if err != nil {
		return nil, fmt.Errorf("list athlete pendencies: %w", err)
	}
	summary := finance.SummarizePendings(items)
	return &summary, nil
}

func sectionsFor(role user.Role) []Section {
	if role == user.RoleAdmin {
		return []Section{SectionAthletes, SectionMatches, SectionFinance, SectionUsers}
	}
	return []Section{SectionAthletes, SectionMatches, SectionPendencies}
}
