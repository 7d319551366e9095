package memory

import (
	"sync"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
)

// Store holds every table behind one lock so cross-entity writes (athlete plus user, ledger
// snapshots) stay atomic, mirroring a single database transaction.
type Store struct {
	mu sync.RWMutex

	users          map[string]user.User
	athletes       map[string]athlete.Athlete
	places         map[string]place.Place
	placeOrder     []string
	matches        map[string]match.Match
	confirmations  map[pair]match.Confirmation
	participations map[pair]struct{}
	pendings       map[string]finance.Pending
	cashFlows      map[string]finance.CashFlow
}

func NewStore() *Store {
	return &Store{
		users:          make(map[string]user.User),
		athletes:       make(map[string]athlete.Athlete),
		places:         make(map[string]place.Place),
		matches:        make(map[string]match.Match),
		confirmations:  make(map[pair]match.Confirmation),
		participations: make(map[pair]struct{}),
		pendings:       make(map[string]finance.Pending),
		cashFlows:      make(map[string]finance.CashFlow),
	}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Athletes() *AthleteRepository {
	return &AthleteRepository{store: s}
}

func (s *Store) Places() *PlaceRepository {
	return &PlaceRepository{store: s}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{store: s}
}

func (s *Store) Confirmations() *ConfirmationRepository {
	return &ConfirmationRepository{store: s}
}

func (s *Store) Pendings() *PendingRepository {
	return &PendingRepository{store: s}
}

func (s *Store) CashFlows() *CashFlowRepository {
	return &CashFlowRepository{store: s}
}

func (s *Store) Ledger() *LedgerRepository {
	return &LedgerRepository{store: s}
}

// RecordParticipation marks that an athlete played a match. Nothing in the API writes
// participations; stores expose it for imports and tests.
func (s *Store) RecordParticipation(athleteID, matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.participations[pair{athleteID: athleteID, matchID: matchID}] = struct{}{}
}

// pair is the (athlete, match) unique key shared by confirmations and participations.
type pair struct {
	athleteID string
	matchID   string
}

// userEmailTaken must be called with the lock held.
func (s *Store) userEmailTaken(email, exceptID string) bool {
	for _, u := range s.users {
		if u.ID != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

// athleteEmailTaken must be called with the lock held.
func (s *Store) athleteEmailTaken(email, exceptID string) bool {
	if email == "" {
		return false
	}
	for _, a := range s.athletes {
		if a.ID != exceptID && a.Email == email {
			return true
		}
	}
	return false
}
