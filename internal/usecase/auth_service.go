package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	idgen "github.com/nilosmferreira/damasios-ai/internal/platform/id"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/password"
)

// dummyPassword is hashed once and compared against when a login email is unknown, so both
// branches pay for one hash comparison.
const dummyPassword = "dummy-password-for-unknown-users"

type CreateUserInput struct {
	Email    string
	Password string
	Role     string
}

type AuthService struct {
	users  user.Repository
	hasher password.Hasher
	idGen  idgen.Generator
	logger *logging.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users user.Repository, hasher password.Hasher, idGen idgen.Generator, logger *logging.Logger) *AuthService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		idGen:  idGen,
		logger: logger,
		now:    time.Now,
	}
}

// VerifyLogin returns the user only when the password matches. Unknown emails and wrong
// passwords both yield ok=false; only store failures are returned as errors.
func (s *AuthService) VerifyLogin(ctx context.Context, email, plain string) (user.User, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.VerifyLogin")
	defer span.End()

	email = user.NormalizeEmail(email)
	if email == "" || plain == "" {
		return user.User{}, false, nil
	}

	u, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		s.compareDummy(ctx, plain)
		return user.User{}, false, nil
	}

	ok, err := s.hasher.Compare(u.PasswordHash, plain)
	if err != nil {
		s.logger.ErrorContext(ctx, "stored password hash is unusable", "user_id", u.ID, "error", err)
		return user.User{}, false, nil
	}
	if !ok {
		return user.User{}, false, nil
	}

	return u, true, nil
}

// Login is VerifyLogin for the HTTP surface: a failed match becomes ErrInvalidCredentials
// reported on the email field.
func (s *AuthService) Login(ctx context.Context, email, plain string) (user.User, error) {
	u, ok, err := s.VerifyLogin(ctx, email, plain)
	if err != nil {
		return user.User{}, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "login rejected", "email", user.NormalizeEmail(email))
		return user.User{}, fieldConflict(ErrInvalidCredentials, "email", ErrInvalidCredentials.Error())
	}
	return u, nil
}

func (s *AuthService) compareDummy(ctx context.Context, plain string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.logger.WarnContext(ctx, "hash dummy password failed", "error", err)
			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash != "" {
		_, _ = s.hasher.Compare(s.dummyHash, plain)
	}
}

// CreateUser inserts a user. Uniqueness of the email is left to the store's unique index.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CreateUser")
	defer span.End()

	u, err := s.newUser(input)
	if err != nil {
		return user.User{}, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return user.User{}, fieldConflict(ErrDuplicateEmail, "email", "email already in use")
		}
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "role", string(u.Role))
	return u, nil
}

// PrepareUser validates input and hashes the password without touching the store. The seed
// command uses it to build the administrator it writes in one transaction.
func (s *AuthService) PrepareUser(input CreateUserInput) (user.User, error) {
	return s.newUser(input)
}

// newUser is shared with athlete creation, which inserts the user inside its own transaction.
func (s *AuthService) newUser(input CreateUserInput) (user.User, error) {
	email := user.NormalizeEmail(input.Email)
	errs := user.ValidateCredentials(email, input.Password)
	role, ok := user.ParseRole(input.Role)
	if !ok {
		errs.Add("role", "invalid role")
	}
	if err := Invalid(errs); err != nil {
		return user.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.idGen.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	now := s.now().UTC()
	return user.User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ResolvePrincipal re-reads the user on every call. A user that no longer exists is treated the
// same as an anonymous caller.
func (s *AuthService) ResolvePrincipal(ctx context.Context, userID string) (user.Principal, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ResolvePrincipal")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" || !idgen.Valid(userID) {
		return user.Principal{}, ErrUnauthenticated
	}

	u, exists, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.Principal{}, fmt.Errorf("%w: user no longer exists", ErrUnauthenticated)
	}

	return u.Principal(), nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]user.Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ListUsers")
	defer span.End()

	items, err := s.users.ListOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}
