package match

import (
	"errors"
	"regexp"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ErrUnknownPlace is returned by repositories when the place foreign key is rejected.
var ErrUnknownPlace = errors.New("place does not exist")

// Match is a scheduled game. Date holds a calendar day at UTC midnight; Time is HH:MM.
type Match struct {
	ID        string
	Date      time.Time
	Time      string
	PlaceID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m Match) Validate() validation.Errors {
	errs := validation.Errors{}
	if m.Date.IsZero() {
		errs.Add("date", "date is required")
	}
	if !timePattern.MatchString(m.Time) {
		errs.Add("time", "time must use HH:MM")
	}
	if m.PlaceID == "" {
		errs.Add("placeId", "place is required")
	}
	return errs
}

// IsPast reports whether the match day is strictly before the day of now.
func (m Match) IsPast(now time.Time) bool {
	return m.Date.Before(Day(now))
}

// Day truncates t to its calendar day at UTC midnight.
func Day(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeTime trims the seconds a TIME column may carry ("19:30:00" -> "19:30").
func NormalizeTime(raw string) string {
	if len(raw) >= 5 {
		return raw[:5]
	}
	return raw
}

// Confirmation records an athlete's intent to attend a match.
type Confirmation struct {
	ID        string
	AthleteID string
	MatchID   string
	CreatedAt time.Time
}

// Listing is a match row enriched with its place and attendance counts.
type Listing struct {
	Match               Match
	Place               place.Place
	ConfirmationCount   int
	ParticipationCount  int
	ConfirmedAthleteIDs []string
}

// ConfirmationScope selects which confirmed athletes a listing exposes: every one for
// administrators, only their own for athletes.
type ConfirmationScope struct {
	All       bool
	AthleteID string
}

func (s ConfirmationScope) Includes(athleteID string) bool {
	return s.All || (s.AthleteID != "" && s.AthleteID == athleteID)
}

func (l Listing) ConfirmedBy(athleteID string) bool {
	for _, id := range l.ConfirmedAthleteIDs {
		if id == athleteID {
			return true
		}
	}
	return false
}
