package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
	idgen "github.com/nilosmferreira/damasios-ai/internal/platform/id"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

type CreateAthleteInput struct {
	Name               string
	Email              string
	BillingType        string
	PreferredPositions []string
	IsActive           *bool
	// CreateUser also provisions an ATLETA login linked to the new athlete.
	CreateUser   bool
	UserEmail    string
	UserPassword string
}

// UpdateAthleteInput carries a partial update; nil fields are left unchanged.
type UpdateAthleteInput struct {
	ID                 string
	Name               *string
	Email              *string
	BillingType        *string
	PreferredPositions []string
	IsActive           *bool
}

type AthleteService struct {
	athletes athlete.Repository
	accounts *AuthService
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewAthleteService(athletes athlete.Repository, accounts *AuthService, idGen idgen.Generator, logger *logging.Logger) *AthleteService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AthleteService{
		athletes: athletes,
		accounts: accounts,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *AthleteService) Create(ctx context.Context, input CreateAthleteInput) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.Create")
	defer span.End()

	errs := validation.Errors{}
	name := strings.TrimSpace(input.Name)
	email := user.NormalizeEmail(input.Email)
	userEmail := user.NormalizeEmail(input.UserEmail)

	if input.CreateUser {
		if !user.ValidEmail(userEmail) {
			errs.Add("userEmail", "invalid email")
		}
		if len(input.UserPassword) < user.MinPasswordLength {
			errs.Add("userPassword", "password must have at least 6 characters")
		}
		if email == "" {
			email = userEmail
		}
	}
	if email != "" && !user.ValidEmail(email) {
		errs.Add("email", "invalid email")
	}

	billing, _ := athlete.ParseBillingType(input.BillingType)
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := s.now().UTC()
	a := athlete.Athlete{
		Name:               name,
		Email:              email,
		BillingType:        billing,
		PreferredPositions: athlete.ParsePositions(input.PreferredPositions),
		IsActive:           active,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	errs.Merge(a.Validate())
	if err := Invalid(errs); err != nil {
		return athlete.Athlete{}, err
	}

	var account *user.User
	if input.CreateUser {
		u, err := s.accounts.newUser(CreateUserInput{
			Email:    userEmail,
			Password: input.UserPassword,
			Role:     string(user.RoleAthlete),
		})
		if err != nil {
			return athlete.Athlete{}, err
		}
		account = &u
		a.UserID = u.ID
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("generate athlete id: %w", err)
	}
	a.ID = id

	if err := s.athletes.Create(ctx, a, account); err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			return athlete.Athlete{}, fieldConflict(ErrDuplicateEmail, "userEmail", "email already in use")
		case errors.Is(err, athlete.ErrDuplicateEmail):
			return athlete.Athlete{}, fieldConflict(ErrDuplicateEmail, "email", "email already in use")
		case errors.Is(err, athlete.ErrUserAlreadyLinked):
			return athlete.Athlete{}, fieldConflict(ErrConstraintViolation, "userEmail", "user already linked to an athlete")
		}
		return athlete.Athlete{}, fmt.Errorf("create athlete: %w", err)
	}

	s.logger.InfoContext(ctx, "athlete created", "athlete_id", a.ID, "with_user", account != nil)
	return a, nil
}

func (s *AthleteService) Update(ctx context.Context, input UpdateAthleteInput) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.Update")
	defer span.End()

	current, err := s.Get(ctx, input.ID)
	if err != nil {
		return athlete.Athlete{}, err
	}

	errs := validation.Errors{}
	next := current.Clone()
	if input.Name != nil {
		next.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		next.Email = user.NormalizeEmail(*input.Email)
		if next.Email != "" && !user.ValidEmail(next.Email) {
			errs.Add("email", "invalid email")
		}
	}
	if input.BillingType != nil {
		next.BillingType, _ = athlete.ParseBillingType(*input.BillingType)
	}
	if input.PreferredPositions != nil {
		next.PreferredPositions = athlete.ParsePositions(input.PreferredPositions)
	}
	if input.IsActive != nil {
		next.IsActive = *input.IsActive
	}
	next.UpdatedAt = s.now().UTC()

	errs.Merge(next.Validate())
	if err := Invalid(errs); err != nil {
		return athlete.Athlete{}, err
	}

	found, err := s.athletes.Update(ctx, next)
	if err != nil {
		if errors.Is(err, athlete.ErrDuplicateEmail) {
			return athlete.Athlete{}, fieldConflict(ErrDuplicateEmail, "email", "email already in use")
		}
		return athlete.Athlete{}, fmt.Errorf("update athlete: %w", err)
	}
	if !found {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, input.ID)
	}

	return next, nil
}

func (s *AthleteService) ToggleStatus(ctx context.Context, id string) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.ToggleStatus")
	defer span.End()

	id = strings.TrimSpace(id)
	if !idgen.Valid(id) {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, id)
	}

	updated, found, err := s.athletes.ToggleActive(ctx, id, s.now().UTC())
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("toggle athlete status: %w", err)
	}
	if !found {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "athlete status toggled", "athlete_id", id, "is_active", updated.IsActive)
	return updated, nil
}

func (s *AthleteService) Get(ctx context.Context, id string) (athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.Get")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return athlete.Athlete{}, InvalidField("id", "athlete id is required")
	}
	if !idgen.Valid(id) {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, id)
	}

	a, exists, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("get athlete: %w", err)
	}
	if !exists {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, id)
	}
	return a, nil
}

func (s *AthleteService) List(ctx context.Context, filter athlete.Filter) (paging.Page[athlete.Listing], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.List")
	defer span.End()

	filter.Page = filter.Page.Normalize()
	page, err := loadPage(ctx, filter.Page,
		func(ctx context.Context) ([]athlete.Listing, error) { return s.athletes.List(ctx, filter) },
		func(ctx context.Context) (int, error) { return s.athletes.Count(ctx, filter) },
	)
	if err != nil {
		return paging.Page[athlete.Listing]{}, fmt.Errorf("list athletes: %w", err)
	}
	return page, nil
}

func (s *AthleteService) ListActive(ctx context.Context) ([]athlete.Athlete, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AthleteService.ListActive")
	defer span.End()

	items, err := s.athletes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active athletes: %w", err)
	}
	return items, nil
}
