package usecase

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/platform/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginAndSessionRoundTrip(t *testing.T) {
	env := newTestEnv(t, MatchOptions{AllowPastMatches: true})
	ctx := context.Background()
	created := env.admin(t)

	u, ok, err := env.auth.VerifyLogin(ctx, "  ADMIN@sistema.com ", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.UserID, u.ID)

	manager, err := session.NewManager(session.Options{
		Secrets: [][]byte{[]byte(strings.Repeat("k", 32))},
		MaxAge:  time.Hour,
	})
	require.NoError(t, err)
	cookie, err := manager.Create(u.ID)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/v1/auth/me", nil)
	req.AddCookie(cookie)
	userID, ok := manager.Resolve(req)
	require.True(t, ok)

	principal, err := env.auth.ResolvePrincipal(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "admin@sistema.com", principal.Email)
	assert.Equal(t, user.RoleAdmin, principal.Role)
}

func TestAuthService_VerifyLogin_WrongPasswordNeverErrors(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	env.admin(t)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "wrong password", email: "admin@sistema.com", password: "nope-nope"},
		{name: "unknown email", email: "ghost@sistema.com", password: "admin123"},
		{name: "empty password", email: "admin@sistema.com", password: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, err := env.auth.VerifyLogin(ctx, tc.email, tc.password)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if ok {
				t.Fatalf("expected login to fail")
			}
		})
	}
}

func TestAuthService_Login_InvalidCredentialsOnEmailField(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	env.admin(t)

	_, err := env.auth.Login(context.Background(), "admin@sistema.com", "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"invalid email or password"}, verr.Fields["email"])

	u, err := env.auth.Login(context.Background(), "admin@sistema.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, u.Role)
}

func TestAuthService_CreateUser_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	env.admin(t)

	_, err := env.auth.CreateUser(context.Background(), CreateUserInput{
		Email:    "Admin@Sistema.com",
		Password: "another1",
		Role:     string(user.RoleAthlete),
	})
	require.ErrorIs(t, err, ErrDuplicateEmail)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
}

func TestAuthService_CreateUser_Validation(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})

	_, err := env.auth.CreateUser(context.Background(), CreateUserInput{Email: "bad", Password: "123", Role: "ROOT"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "role")
}

func TestAuthService_ResolvePrincipal_Unauthenticated(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()

	for _, id := range []string{"", "not-a-uuid", "00000000-0000-4000-8000-999999999999"} {
		if _, err := env.auth.ResolvePrincipal(ctx, id); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("id %q: expected ErrUnauthenticated, got %v", id, err)
		}
	}
}

func TestAuthService_ListUsersIncludesLinkedAthlete(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	env.admin(t)
	a, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	items, err := env.auth.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	var found bool
	for _, item := range items {
		if item.User.Email == "maria@example.com" {
			found = true
			assert.Equal(t, a.ID, item.AthleteID)
			assert.True(t, item.HasAthlete())
		}
	}
	assert.True(t, found)
}

func TestRequireAdmin(t *testing.T) {
	athleteCaller := user.Principal{UserID: "u-1", Role: user.RoleAthlete}
	if err := RequireAdmin(athleteCaller); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := RequireAdmin(user.Principal{}); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if err := RequireAdmin(user.Principal{UserID: "u-2", Role: user.RoleAdmin}); err != nil {
		t.Fatalf("expected admin to pass, got %v", err)
	}
}

func TestAuthService_PrepareUserDoesNotInsert(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()

	u, err := env.auth.PrepareUser(CreateUserInput{Email: " Seed@Sistema.com", Password: "admin123", Role: string(user.RoleAdmin)})
	require.NoError(t, err)
	assert.Equal(t, "seed@sistema.com", u.Email)
	assert.NotEqual(t, "admin123", u.PasswordHash)

	_, exists, err := env.store.Users().GetByEmail(ctx, "seed@sistema.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = env.auth.PrepareUser(CreateUserInput{Email: "seed@sistema.com", Password: "123", Role: "ROOT"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")
	assert.Contains(t, verr.Fields, "role")
}
