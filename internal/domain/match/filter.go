package match

import (
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

type StatusFilter string

const (
	StatusUpcoming StatusFilter = "upcoming"
	StatusPast     StatusFilter = "past"
	StatusAll      StatusFilter = "all"
)

// Filter drives the match listing. Today anchors the upcoming/past split.
type Filter struct {
	Status   StatusFilter
	PlaceID  string
	DateFrom *time.Time
	DateTo   *time.Time
	Today    time.Time
	Page     paging.Params
}

// ParseFilter reads raw query values; invalid dates and unknown statuses are ignored.
func ParseFilter(status, placeID, dateFrom, dateTo string, today time.Time, page paging.Params) Filter {
	f := Filter{
		Status:  StatusUpcoming,
		PlaceID: strings.TrimSpace(placeID),
		Today:   Day(today),
		Page:    page.Normalize(),
	}
	switch StatusFilter(strings.ToLower(strings.TrimSpace(status))) {
	case StatusPast:
		f.Status = StatusPast
	case StatusAll:
		f.Status = StatusAll
	}
	f.DateFrom = parseDate(dateFrom)
	f.DateTo = parseDate(dateTo)
	return f
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func (f Filter) Matches(m Match) bool {
	switch f.Status {
	case StatusUpcoming:
		if m.Date.Before(f.Today) {
			return false
		}
	case StatusPast:
		if !m.Date.Before(f.Today) {
			return false
		}
	}
	if f.PlaceID != "" && m.PlaceID != f.PlaceID {
		return false
	}
	if f.DateFrom != nil && m.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && m.Date.After(*f.DateTo) {
		return false
	}
	return true
}

// Less orders matches by date (descending for past listings) then by time.
func (f Filter) Less(a, b Match) bool {
	if !a.Date.Equal(b.Date) {
		if f.Status == StatusPast {
			return a.Date.After(b.Date)
		}
		return a.Date.Before(b.Date)
	}
	return a.Time < b.Time
}
