package athlete

import (
	"strings"

	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

type StatusFilter string

const (
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
	StatusAll      StatusFilter = "all"
)

// Filter drives the athlete listing. Zero values mean "no restriction" except Status, which
// defaults to active through ParseFilter.
type Filter struct {
	Status      StatusFilter
	BillingType BillingType
	Position    Position
	Search      string
	Page        paging.Params
}

// ParseFilter reads raw query values, falling back to defaults on anything it cannot parse.
func ParseFilter(status, billingType, position, search string, page paging.Params) Filter {
	f := Filter{
		Status: StatusActive,
		Search: strings.TrimSpace(search),
		Page:   page.Normalize(),
	}
	switch StatusFilter(strings.ToLower(strings.TrimSpace(status))) {
	case StatusInactive:
		f.Status = StatusInactive
	case StatusAll:
		f.Status = StatusAll
	}
	if bt, ok := ParseBillingType(billingType); ok {
		f.BillingType = bt
	}
	if p, ok := ParsePosition(position); ok {
		f.Position = p
	}
	return f
}

// Matches applies the filter predicates to a listing row. Used by in-memory stores.
func (f Filter) Matches(row Listing) bool {
	a := row.Athlete
	switch f.Status {
	case StatusActive:
		if !a.IsActive {
			return false
		}
	case StatusInactive:
		if a.IsActive {
			return false
		}
	}
	if f.BillingType != "" && a.BillingType != f.BillingType {
		return false
	}
	if f.Position != "" && !a.HasPosition(f.Position) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(a.Name), needle) &&
			!strings.Contains(strings.ToLower(a.Email), needle) &&
			!strings.Contains(strings.ToLower(row.UserEmail), needle) {
			return false
		}
	}
	return true
}
