package athlete

import (
	"strings"
	"testing"

	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/stretchr/testify/assert"
)

func TestAthlete_Validate(t *testing.T) {
	valid := Athlete{
		Name:               "João da Silva",
		BillingType:        BillingMensalista,
		PreferredPositions: []Position{PositionArmador, PositionAla},
	}
	if errs := valid.Validate(); !errs.Empty() {
		t.Fatalf("expected valid athlete, got %v", errs)
	}

	cases := []struct {
		name  string
		edit  func(a *Athlete)
		field string
	}{
		{name: "short name", edit: func(a *Athlete) { a.Name = "J" }, field: "name"},
		{name: "long name", edit: func(a *Athlete) { a.Name = strings.Repeat("a", 101) }, field: "name"},
		{name: "digits in name", edit: func(a *Athlete) { a.Name = "Player 23" }, field: "name"},
		{name: "unknown billing", edit: func(a *Athlete) { a.BillingType = "ANUAL" }, field: "billingType"},
		{name: "no positions", edit: func(a *Athlete) { a.PreferredPositions = nil }, field: "preferredPositions"},
		{name: "four positions", edit: func(a *Athlete) {
			a.PreferredPositions = []Position{PositionArmador, PositionAla, PositionPivo, PositionAlaPivo}
		}, field: "preferredPositions"},
		{name: "duplicate position", edit: func(a *Athlete) {
			a.PreferredPositions = []Position{PositionPivo, PositionPivo}
		}, field: "preferredPositions"},
		{name: "unknown position", edit: func(a *Athlete) {
			a.PreferredPositions = []Position{"GOLEIRO"}
		}, field: "preferredPositions"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := valid.Clone()
			tc.edit(&a)
			errs := a.Validate()
			assert.Contains(t, errs, tc.field)
		})
	}
}

func TestParseFilter_Defaults(t *testing.T) {
	f := ParseFilter("", "", "", "  ", paging.Params{})
	assert.Equal(t, StatusActive, f.Status)
	assert.Empty(t, f.BillingType)
	assert.Empty(t, f.Position)
	assert.Equal(t, paging.Default(), f.Page)

	f = ParseFilter("ALL", "diarista", "pivo", " ana ", paging.Params{Page: 2, Limit: 10})
	assert.Equal(t, StatusAll, f.Status)
	assert.Equal(t, BillingDiarista, f.BillingType)
	assert.Equal(t, PositionPivo, f.Position)
	assert.Equal(t, "ana", f.Search)

	f = ParseFilter("archived", "yearly", "keeper", "", paging.Default())
	assert.Equal(t, StatusActive, f.Status)
	assert.Empty(t, f.BillingType)
	assert.Empty(t, f.Position)
}

func TestFilter_Matches(t *testing.T) {
	row := Listing{
		Athlete: Athlete{
			Name:               "Maria Souza",
			Email:              "maria@example.com",
			BillingType:        BillingDiarista,
			PreferredPositions: []Position{PositionAlaPivo},
			IsActive:           false,
		},
		UserEmail: "login.maria@example.com",
	}

	assert.False(t, Filter{Status: StatusActive}.Matches(row))
	assert.True(t, Filter{Status: StatusInactive}.Matches(row))
	assert.True(t, Filter{Status: StatusAll}.Matches(row))
	assert.True(t, Filter{Status: StatusAll, Search: "SOUZA"}.Matches(row))
	assert.True(t, Filter{Status: StatusAll, Search: "login.maria"}.Matches(row))
	assert.False(t, Filter{Status: StatusAll, Search: "pedro"}.Matches(row))
	assert.False(t, Filter{Status: StatusAll, BillingType: BillingMensalista}.Matches(row))
	assert.True(t, Filter{Status: StatusAll, Position: PositionAlaPivo}.Matches(row))
	assert.False(t, Filter{Status: StatusAll, Position: PositionPivo}.Matches(row))
}
