package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
	idgen "github.com/nilosmferreira/damasios-ai/internal/platform/id"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"go.opentelemetry.io/otel/attribute"
)

type MatchInput struct {
	Date    string
	Time    string
	PlaceID string
}

type UpdateMatchInput struct {
	ID string
	MatchInput
}

type MatchOptions struct {
	// AllowPastMatches lets presence be toggled on matches whose day has already passed.
	AllowPastMatches bool
}

type PresenceResult struct {
	AthleteID string
	MatchID   string
	Confirmed bool
}

func (r PresenceResult) Message() string {
	if r.Confirmed {
		return "presence confirmed"
	}
	return "presence cancelled"
}

// MatchListing is the match loader payload.
type MatchListing struct {
	Matches paging.Page[match.Listing]
	Places  []place.Place
	// Athlete is the caller's own athlete record, when one is linked.
	Athlete *athlete.Athlete
}

type MatchService struct {
	matches       match.Repository
	confirmations match.ConfirmationRepository
	athletes      athlete.Repository
	places        place.Repository
	idGen         idgen.Generator
	logger        *logging.Logger
	opts          MatchOptions
	now           func() time.Time
}

func NewMatchService(
	matches match.Repository,
	confirmations match.ConfirmationRepository,
	athletes athlete.Repository,
	places place.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
	opts MatchOptions,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matches:       matches,
		confirmations: confirmations,
		athletes:      athletes,
		places:        places,
		idGen:         idGen,
		logger:        logger,
		opts:          opts,
		now:           time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, actor user.Principal, input MatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	if err := RequireAdmin(actor); err != nil {
		return match.Match{}, err
	}

	now := s.now().UTC()
	m, err := s.buildMatch(ctx, input)
	if err != nil {
		return match.Match{}, err
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	m.ID = id
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := s.matches.Create(ctx, m); err != nil {
		if errors.Is(err, match.ErrUnknownPlace) {
			return match.Match{}, InvalidField("placeId", "place not found")
		}
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created", "match_id", m.ID, "date", m.Date.Format(match.DateLayout))
	return m, nil
}

func (s *MatchService) Update(ctx context.Context, actor user.Principal, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update")
	defer span.End()

	if err := RequireAdmin(actor); err != nil {
		return match.Match{}, err
	}

	current, err := s.Get(ctx, input.ID)
	if err != nil {
		return match.Match{}, err
	}

	next, err := s.buildMatch(ctx, input.MatchInput)
	if err != nil {
		return match.Match{}, err
	}
	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	next.UpdatedAt = s.now().UTC()

	found, err := s.matches.Update(ctx, next)
	if err != nil {
		if errors.Is(err, match.ErrUnknownPlace) {
			return match.Match{}, InvalidField("placeId", "place not found")
		}
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match id=%s", ErrNotFound, input.ID)
	}
	return next, nil
}

func (s *MatchService) buildMatch(ctx context.Context, input MatchInput) (match.Match, error) {
	m := match.Match{
		Time:    strings.TrimSpace(input.Time),
		PlaceID: strings.TrimSpace(input.PlaceID),
	}
	badDate := false
	if raw := strings.TrimSpace(input.Date); raw != "" {
		parsed, err := time.Parse(match.DateLayout, raw)
		if err != nil {
			badDate = true
		} else {
			m.Date = parsed
		}
	}
	errs := m.Validate()
	if badDate {
		errs["date"] = []string{"date must use YYYY-MM-DD"}
	}
	if err := Invalid(errs); err != nil {
		return match.Match{}, err
	}

	if _, exists, err := s.places.GetByID(ctx, m.PlaceID); err != nil {
		return match.Match{}, fmt.Errorf("get place: %w", err)
	} else if !exists {
		return match.Match{}, InvalidField("placeId", "place not found")
	}
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, id string) (match.Match, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return match.Match{}, InvalidField("id", "match id is required")
	}
	if !idgen.Valid(id) {
		return match.Match{}, fmt.Errorf("%w: match id=%s", ErrNotFound, id)
	}

	m, exists, err := s.matches.GetByID(ctx, id)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match id=%s", ErrNotFound, id)
	}
	return m, nil
}

// List returns a page of matches. Administrators see every confirmation; athletes only see
// whether they confirmed themselves.
func (s *MatchService) List(ctx context.Context, actor user.Principal, filter match.Filter) (MatchListing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	if filter.Today.IsZero() {
		filter.Today = match.Day(s.now())
	}
	filter.Page = filter.Page.Normalize()

	out := MatchListing{}
	scope := match.ConfirmationScope{All: actor.IsAdmin()}
	if own, exists, err := s.athletes.GetByUserID(ctx, actor.UserID); err != nil {
		return MatchListing{}, fmt.Errorf("get caller athlete: %w", err)
	} else if exists {
		out.Athlete = &own
		scope.AthleteID = own.ID
	}

	page, err := loadPage(ctx, filter.Page,
		func(ctx context.Context) ([]match.Listing, error) { return s.matches.List(ctx, filter, scope) },
		func(ctx context.Context) (int, error) { return s.matches.Count(ctx, filter) },
	)
	if err != nil {
		return MatchListing{}, fmt.Errorf("list matches: %w", err)
	}
	out.Matches = page

	places, err := s.places.List(ctx)
	if err != nil {
		return MatchListing{}, fmt.Errorf("list places: %w", err)
	}
	out.Places = places

	return out, nil
}

func (s *MatchService) ListPlaces(ctx context.Context) ([]place.Place, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListPlaces")
	defer span.End()

	places, err := s.places.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	return places, nil
}

// TogglePresence flips the caller's confirmation for a match. Athletes may only toggle their
// own record; administrators may toggle any athlete.
func (s *MatchService) TogglePresence(ctx context.Context, actor user.Principal, athleteID, matchID string) (PresenceResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.TogglePresence",
		attribute.String("athlete_id", athleteID),
		attribute.String("match_id", matchID),
	)
	defer span.End()

	if actor.UserID == "" {
		return PresenceResult{}, ErrUnauthenticated
	}

	athleteID = strings.TrimSpace(athleteID)
	matchID = strings.TrimSpace(matchID)
	errs := validation.Errors{}
	if athleteID == "" {
		errs.Add("athleteId", "athlete is required")
	}
	if matchID == "" {
		errs.Add("matchId", "match is required")
	}
	if err := Invalid(errs); err != nil {
		return PresenceResult{}, err
	}

	if !idgen.Valid(athleteID) {
		return PresenceResult{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, athleteID)
	}
	a, exists, err := s.athletes.GetByID(ctx, athleteID)
	if err != nil {
		return PresenceResult{}, fmt.Errorf("get athlete: %w", err)
	}
	if !exists {
		return PresenceResult{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, athleteID)
	}
	if !actor.IsAdmin() && a.UserID != actor.UserID {
		return PresenceResult{}, fmt.Errorf("%w: athletes can only change their own presence", ErrForbidden)
	}

	m, err := s.Get(ctx, matchID)
	if err != nil {
		return PresenceResult{}, err
	}
	if !s.opts.AllowPastMatches && m.IsPast(s.now()) {
		return PresenceResult{}, fmt.Errorf("%w: match on %s", ErrMatchClosed, m.Date.Format(match.DateLayout))
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return PresenceResult{}, fmt.Errorf("generate confirmation id: %w", err)
	}
	confirmed, err := s.confirmations.Toggle(ctx, match.Confirmation{
		ID:        id,
		AthleteID: athleteID,
		MatchID:   matchID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return PresenceResult{}, fmt.Errorf("toggle confirmation: %w", err)
	}

	s.logger.InfoContext(ctx, "presence toggled",
		"athlete_id", athleteID,
		"match_id", matchID,
		"confirmed", confirmed,
		"actor_id", actor.UserID,
	)
	return PresenceResult{AthleteID: athleteID, MatchID: matchID, Confirmed: confirmed}, nil
}
