package finance

import (
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

// ViewType selects which ledger collections a finance listing fills.
type ViewType string

const (
	ViewAll      ViewType = "all"
	ViewPending  ViewType = "pending"
	ViewPaid     ViewType = "paid"
	ViewCashFlow ViewType = "cashflow"
)

type Filter struct {
	Type      ViewType
	AthleteID string
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      paging.Params
}

func ParseFilter(viewType, athleteID, dateFrom, dateTo string, page paging.Params) Filter {
	f := Filter{
		Type:      ViewAll,
		AthleteID: strings.TrimSpace(athleteID),
		Page:      page.Normalize(),
	}
	switch ViewType(strings.ToLower(strings.TrimSpace(viewType))) {
	case ViewPending:
		f.Type = ViewPending
	case ViewPaid:
		f.Type = ViewPaid
	case ViewCashFlow:
		f.Type = ViewCashFlow
	}
	if from, ok := parseDate(dateFrom); ok {
		f.DateFrom = &from
	}
	if to, ok := parseDate(dateTo); ok {
		end := to.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	return f
}

func (f Filter) IncludesPendings() bool {
	return f.Type != ViewCashFlow
}

func (f Filter) IncludesCashFlows() bool {
	return f.Type == ViewAll || f.Type == ViewCashFlow
}

// PendingStatus is the status restriction implied by Type, empty for no restriction.
func (f Filter) PendingStatus() Status {
	switch f.Type {
	case ViewPending:
		return StatusPending
	case ViewPaid:
		return StatusPaid
	default:
		return ""
	}
}

func (f Filter) MatchesPending(p Pending) bool {
	if status := f.PendingStatus(); status != "" && p.Status != status {
		return false
	}
	if f.AthleteID != "" && p.AthleteID != f.AthleteID {
		return false
	}
	return inRange(p.DueDate, f.DateFrom, f.DateTo)
}

func (f Filter) MatchesCashFlow(c CashFlow) bool {
	return inRange(c.Date, f.DateFrom, f.DateTo)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// LessPending orders by status (PENDENTE first) then by due date.
func LessPending(a, b Pending) bool {
	if a.Status != b.Status {
		return a.Status == StatusPending
	}
	return a.DueDate.Before(b.DueDate)
}

// LessCashFlow orders newest first.
func LessCashFlow(a, b CashFlow) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
