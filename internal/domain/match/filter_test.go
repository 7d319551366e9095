package match

import (
	"sort"
	"testing"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilter_UpcomingAndPast(t *testing.T) {
	today := time.Date(2026, 5, 10, 15, 30, 0, 0, time.UTC)
	yesterday := Match{ID: "m1", Date: day(2026, 5, 9), Time: "19:00"}
	sameDay := Match{ID: "m2", Date: day(2026, 5, 10), Time: "08:00"}

	upcoming := ParseFilter("", "", "", "", today, paging.Default())
	if upcoming.Status != StatusUpcoming {
		t.Fatalf("expected upcoming default, got %s", upcoming.Status)
	}
	if upcoming.Matches(yesterday) {
		t.Fatalf("yesterday must not be upcoming")
	}
	if !upcoming.Matches(sameDay) {
		t.Fatalf("a match today is upcoming")
	}

	past := ParseFilter("past", "", "", "", today, paging.Default())
	if !past.Matches(yesterday) || past.Matches(sameDay) {
		t.Fatalf("unexpected past filter result")
	}

	all := ParseFilter("all", "", "2026-05-10", "garbage", today, paging.Default())
	if all.DateTo != nil {
		t.Fatalf("invalid dateTo must be ignored")
	}
	if all.Matches(yesterday) || !all.Matches(sameDay) {
		t.Fatalf("dateFrom must be applied")
	}
}

func TestFilter_Ordering(t *testing.T) {
	items := []Match{
		{ID: "late", Date: day(2026, 6, 2), Time: "20:00"},
		{ID: "early-b", Date: day(2026, 6, 1), Time: "21:00"},
		{ID: "early-a", Date: day(2026, 6, 1), Time: "19:00"},
	}

	asc := Filter{Status: StatusUpcoming}
	sort.SliceStable(items, func(i, j int) bool { return asc.Less(items[i], items[j]) })
	if items[0].ID != "early-a" || items[1].ID != "early-b" || items[2].ID != "late" {
		t.Fatalf("unexpected upcoming order: %+v", items)
	}

	desc := Filter{Status: StatusPast}
	sort.SliceStable(items, func(i, j int) bool { return desc.Less(items[i], items[j]) })
	if items[0].ID != "late" || items[1].ID != "early-a" {
		t.Fatalf("unexpected past order: %+v", items)
	}
}

func TestMatch_Validate(t *testing.T) {
	m := Match{Date: day(2026, 1, 1), Time: "24:00", PlaceID: ""}
	errs := m.Validate()
	if _, ok := errs["time"]; !ok {
		t.Fatalf("expected time error")
	}
	if _, ok := errs["placeId"]; !ok {
		t.Fatalf("expected placeId error")
	}
	if NormalizeTime("19:30:00") != "19:30" {
		t.Fatalf("unexpected normalized time")
	}
}
