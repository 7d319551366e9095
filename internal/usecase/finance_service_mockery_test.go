package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/infrastructure/repository/memory"
	athletemock "github.com/nilosmferreira/damasios-ai/internal/mocks/domain/athlete"
	financemock "github.com/nilosmferreira/damasios-ai/internal/mocks/domain/finance"
	usermock "github.com/nilosmferreira/damasios-ai/internal/mocks/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/password"
	"github.com/stretchr/testify/mock"
)

const mockAthleteID = "00000000-0000-4000-8000-000000000042"

func newMockedFinanceService(t *testing.T) (*FinanceService, *financemock.PendingRepository, *athletemock.Repository) {
	t.Helper()

	store := memory.NewStore()
	pendings := financemock.NewPendingRepository(t)
	athletes := athletemock.NewRepository(t)
	svc := NewFinanceService(pendings, store.CashFlows(), store.Ledger(), athletes, &sequenceIDs{}, logging.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc, pendings, athletes
}

func TestFinanceService_CreatePending_UnknownAthleteUsingMockery(t *testing.T) {
	t.Parallel()

	svc, _, athletes := newMockedFinanceService(t)
	athletes.
		On("GetByID", mock.Anything, mockAthleteID).
		Return(athlete.Athlete{}, false, nil).
		Once()

	_, err := svc.CreatePending(context.Background(), CreatePendingInput{AthleteID: mockAthleteID, Amount: "10", DueDate: "2025-03-20"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFinanceService_CreatePending_ForeignKeyRaceUsingMockery(t *testing.T) {
	t.Parallel()

	svc, pendings, athletes := newMockedFinanceService(t)
	athletes.
		On("GetByID", mock.Anything, mockAthleteID).
		Return(athlete.Athlete{ID: mockAthleteID, Name: "Maria Silva"}, true, nil).
		Once()
	pendings.
		On("Create", mock.Anything, mock.MatchedBy(func(p finance.Pending) bool {
			return p.AthleteID == mockAthleteID && p.Status == finance.StatusPending
		})).
		Return(finance.ErrUnknownAthlete).
		Once()

	_, err := svc.CreatePending(context.Background(), CreatePendingInput{AthleteID: mockAthleteID, Amount: "10", DueDate: "2025-03-20"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound when the athlete disappears before insert, got %v", err)
	}
}

func TestFinanceService_MarkPaid_OutcomesUsingMockery(t *testing.T) {
	t.Parallel()

	pendingID := "00000000-0000-4000-8000-000000000007"
	storeErr := errors.New("connection reset by peer")
	cases := []struct {
		name  string
		found bool
		err   error
		want  error
	}{
		{name: "missing", found: false, want: ErrNotFound},
		{name: "already paid", found: true, err: finance.ErrInvalidTransition, want: ErrInvalidTransition},
		{name: "store failure", found: false, err: storeErr, want: storeErr},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, pendings, _ := newMockedFinanceService(t)
			pendings.
				On("MarkPaid", mock.Anything, pendingID, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), fixedNow).
				Return(finance.Pending{}, tc.found, tc.err).
				Once()

			_, err := svc.MarkPaid(context.Background(), pendingID, "")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_ResolvePrincipal_StoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	users := usermock.NewRepository(t)
	svc := NewAuthService(users, password.NewBcryptHasher(4), &sequenceIDs{}, logging.NewNop())
	userID := "00000000-0000-4000-8000-000000000001"
	storeErr := errors.New("too many connections")

	users.
		On("GetByID", mock.Anything, userID).
		Return(user.User{}, false, storeErr).
		Once()

	_, err := svc.ResolvePrincipal(context.Background(), userID)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error, got %v", err)
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("store failures must not look like a logged out caller")
	}
}

func TestAthleteService_Create_UserAlreadyLinkedUsingMockery(t *testing.T) {
	t.Parallel()

	athletes := athletemock.NewRepository(t)
	users := usermock.NewRepository(t)
	ids := &sequenceIDs{}
	accounts := NewAuthService(users, password.NewBcryptHasher(4), ids, logging.NewNop())
	svc := NewAthleteService(athletes, accounts, ids, logging.NewNop())

	athletes.
		On("Create", mock.Anything, mock.AnythingOfType("athlete.Athlete"), mock.AnythingOfType("*user.User")).
		Return(athlete.ErrUserAlreadyLinked).
		Once()

	_, err := svc.Create(context.Background(), CreateAthleteInput{
		Name:               "Maria Silva",
		BillingType:        "DIARISTA",
		PreferredPositions: []string{"ALA"},
		CreateUser:         true,
		UserEmail:          "maria@example.com",
		UserPassword:       "secret123",
	})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields["userEmail"]) == 0 {
		t.Fatalf("expected userEmail field error, got %v", err)
	}
}
