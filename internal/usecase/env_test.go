package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/memory"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/password"
)

var fixedNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

// sequenceIDs hands out deterministic UUID-shaped ids.
type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.next++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", g.next), nil
}

type testEnv struct {
	store     *memory.Store
	auth      *AuthService
	athletes  *AthleteService
	matches   *MatchService
	finance   *FinanceService
	dashboard *DashboardService
}

func newTestEnv(t *testing.T, opts MatchOptions) *testEnv {
	t.Helper()

	store := memory.NewSeededStore()
	ids := &sequenceIDs{}
	logger := logging.NewNop()
	clock := func() time.Time { return fixedNow }

	auth := NewAuthService(store.Users(), password.NewBcryptHasher(4), ids, logger)
	auth.now = clock
	athletes := NewAthleteService(store.Athletes(), auth, ids, logger)
	athletes.now = clock
	matches := NewMatchService(store.Matches(), store.Confirmations(), store.Athletes(), store.Places(), ids, logger, opts)
	matches.now = clock
	finance := NewFinanceService(store.Pendings(), store.CashFlows(), store.Ledger(), store.Athletes(), ids, logger)
	finance.now = clock
	dashboard := NewDashboardService(store.Athletes(), store.Matches(), store.Pendings(), store.Ledger())
	dashboard.now = clock

	return &testEnv{
		store:     store,
		auth:      auth,
		athletes:  athletes,
		matches:   matches,
		finance:   finance,
		dashboard: dashboard,
	}
}

func (e *testEnv) admin(t *testing.T) user.Principal {
	t.Helper()

	u, err := e.auth.CreateUser(context.Background(), CreateUserInput{
		Email:    "admin@sistema.com",
		Password: "admin123",
		Role:     string(user.RoleAdmin),
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	return u.Principal()
}

// athleteWithLogin creates an athlete plus its linked ATLETA user.
func (e *testEnv) athleteWithLogin(t *testing.T, name, email string) (athlete.Athlete, user.Principal) {
	t.Helper()

	ctx := context.Background()
	a, err := e.athletes.Create(ctx, CreateAthleteInput{
		Name:               name,
		BillingType:        string(athlete.BillingMensalista),
		PreferredPositions: []string{string(athlete.PositionAla)},
		CreateUser:         true,
		UserEmail:          email,
		UserPassword:       "secret123",
	})
	if err != nil {
		t.Fatalf("create athlete %s: %v", name, err)
	}
	u, exists, err := e.store.Users().GetByID(ctx, a.UserID)
	if err != nil || !exists {
		t.Fatalf("linked user missing: exists=%v err=%v", exists, err)
	}
	return a, u.Principal()
}
