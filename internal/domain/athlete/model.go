package athlete

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
)

// BillingType is the fee model of an athlete.
type BillingType string

const (
	BillingDiarista   BillingType = "DIARISTA"
	BillingMensalista BillingType = "MENSALISTA"
)

var AllBillingTypes = map[BillingType]struct{}{
	BillingDiarista:   {},
	BillingMensalista: {},
}

// Position is a basketball court position.
type Position string

const (
	PositionArmador    Position = "ARMADOR"
	PositionAla        Position = "ALA"
	PositionAlaArmador Position = "ALA_ARMADOR"
	PositionPivo       Position = "PIVO"
	PositionAlaPivo    Position = "ALA_PIVO"
)

var AllPositions = map[Position]struct{}{
	PositionArmador:    {},
	PositionAla:        {},
	PositionAlaArmador: {},
	PositionPivo:       {},
	PositionAlaPivo:    {},
}

const (
	MinNameLength = 2
	MaxNameLength = 100
	MinPositions  = 1
	MaxPositions  = 3
)

var (
	ErrDuplicateEmail = errors.New("athlete email already registered")
	// ErrUserAlreadyLinked is returned when the referenced user already owns an athlete.
	ErrUserAlreadyLinked = errors.New("user already linked to an athlete")
)

var namePattern = regexp.MustCompile(`^[\p{L}\s]+$`)

type Athlete struct {
	ID                 string
	Name               string
	Email              string
	BillingType        BillingType
	PreferredPositions []Position
	IsActive           bool
	UserID             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (a Athlete) HasUser() bool {
	return a.UserID != ""
}

func (a Athlete) HasPosition(p Position) bool {
	for _, item := range a.PreferredPositions {
		if item == p {
			return true
		}
	}
	return false
}

func (a Athlete) Clone() Athlete {
	a.PreferredPositions = append([]Position(nil), a.PreferredPositions...)
	return a
}

// Validate checks field invariants. Email format is checked by the caller, which knows the
// input field name it came from.
func (a Athlete) Validate() validation.Errors {
	errs := validation.Errors{}
	errs.Merge(ValidateName(a.Name))
	if _, ok := AllBillingTypes[a.BillingType]; !ok {
		errs.Add("billingType", "invalid billing type")
	}
	errs.Merge(ValidatePositions(a.PreferredPositions))
	return errs
}

func ValidateName(name string) validation.Errors {
	errs := validation.Errors{}
	length := utf8.RuneCountInString(name)
	switch {
	case length < MinNameLength:
		errs.Add("name", "name must have at least 2 characters")
	case length > MaxNameLength:
		errs.Add("name", "name must have at most 100 characters")
	case !namePattern.MatchString(name):
		errs.Add("name", "name must contain only letters and spaces")
	}
	return errs
}

func ValidatePositions(positions []Position) validation.Errors {
	errs := validation.Errors{}
	if len(positions) < MinPositions {
		errs.Add("preferredPositions", "select at least one position")
		return errs
	}
	if len(positions) > MaxPositions {
		errs.Add("preferredPositions", "select at most 3 positions")
	}

	seen := make(map[Position]struct{}, len(positions))
	for _, p := range positions {
		if _, ok := AllPositions[p]; !ok {
			errs.Add("preferredPositions", "invalid position: "+string(p))
			continue
		}
		if _, dup := seen[p]; dup {
			errs.Add("preferredPositions", "duplicate position: "+string(p))
			continue
		}
		seen[p] = struct{}{}
	}
	return errs
}

func ParseBillingType(raw string) (BillingType, bool) {
	value := BillingType(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := AllBillingTypes[value]
	return value, ok
}

func ParsePosition(raw string) (Position, bool) {
	value := Position(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := AllPositions[value]
	return value, ok
}

func ParsePositions(raw []string) []Position {
	out := make([]Position, 0, len(raw))
	for _, item := range raw {
		out = append(out, Position(strings.ToUpper(strings.TrimSpace(item))))
	}
	return out
}

// Listing is an athlete row enriched for the admin listing.
type Listing struct {
	Athlete            Athlete
	UserEmail          string
	UserRole           string
	ConfirmationCount  int
	ParticipationCount int
	PendingCount       int
}
