package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_TogglePresenceRoundTrip(t *testing.T) {
	env := newTestEnv(t, MatchOptions{AllowPastMatches: true})
	ctx := context.Background()
	admin := env.admin(t)
	a, caller := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	m, err := env.matches.Create(ctx, admin, MatchInput{Date: "2025-03-15", Time: "19:30", PlaceID: place.DefaultID})
	require.NoError(t, err)

	first, err := env.matches.TogglePresence(ctx, caller, a.ID, m.ID)
	require.NoError(t, err)
	assert.True(t, first.Confirmed)
	assert.Equal(t, "presence confirmed", first.Message())

	second, err := env.matches.TogglePresence(ctx, caller, a.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, second.Confirmed)

	exists, err := env.store.Confirmations().Exists(ctx, a.ID, m.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMatchService_TogglePresenceForbiddenForOtherAthlete(t *testing.T) {
	env := newTestEnv(t, MatchOptions{AllowPastMatches: true})
	ctx := context.Background()
	admin := env.admin(t)
	maria, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")
	_, joao := env.athleteWithLogin(t, "Joao Lima", "joao@example.com")

	m, err := env.matches.Create(ctx, admin, MatchInput{Date: "2025-03-15", Time: "19:30", PlaceID: place.DefaultID})
	require.NoError(t, err)

	_, err = env.matches.TogglePresence(ctx, joao, maria.ID, m.ID)
	require.ErrorIs(t, err, ErrForbidden)

	result, err := env.matches.TogglePresence(ctx, admin, maria.ID, m.ID)
	require.NoError(t, err, "administrators may toggle for anyone")
	assert.True(t, result.Confirmed)
}

func TestMatchService_TogglePresencePastMatchGuard(t *testing.T) {
	ctx := context.Background()

	closed := newTestEnv(t, MatchOptions{AllowPastMatches: false})
	admin := closed.admin(t)
	a, caller := closed.athleteWithLogin(t, "Maria Silva", "maria@example.com")
	past, err := closed.matches.Create(ctx, admin, MatchInput{Date: "2025-03-01", Time: "19:30", PlaceID: place.DefaultID})
	require.NoError(t, err)
	today, err := closed.matches.Create(ctx, admin, MatchInput{Date: "2025-03-10", Time: "08:00", PlaceID: place.DefaultID})
	require.NoError(t, err)

	_, err = closed.matches.TogglePresence(ctx, caller, a.ID, past.ID)
	require.ErrorIs(t, err, ErrMatchClosed)
	_, err = closed.matches.TogglePresence(ctx, caller, a.ID, today.ID)
	require.NoError(t, err, "a match today is still open")

	open := newTestEnv(t, MatchOptions{AllowPastMatches: true})
	admin = open.admin(t)
	a, caller = open.athleteWithLogin(t, "Maria Silva", "maria@example.com")
	past, err = open.matches.Create(ctx, admin, MatchInput{Date: "2025-03-01", Time: "19:30", PlaceID: place.DefaultID})
	require.NoError(t, err)
	_, err = open.matches.TogglePresence(ctx, caller, a.ID, past.ID)
	require.NoError(t, err)
}

func TestMatchService_TogglePresenceNotFound(t *testing.T) {
	env := newTestEnv(t, MatchOptions{AllowPastMatches: true})
	ctx := context.Background()
	a, caller := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	_, err := env.matches.TogglePresence(ctx, caller, a.ID, "00000000-0000-4000-8000-999999999999")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = env.matches.TogglePresence(ctx, caller, "00000000-0000-4000-8000-999999999998", a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMatchService_CreateRequiresAdmin(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	_, caller := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	_, err := env.matches.Create(context.Background(), caller, MatchInput{Date: "2025-03-15", Time: "19:30", PlaceID: place.DefaultID})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestMatchService_CreateValidation(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	admin := env.admin(t)

	cases := map[string]MatchInput{
		"date":    {Date: "15/03/2025", Time: "19:30", PlaceID: place.DefaultID},
		"time":    {Date: "2025-03-15", Time: "7pm", PlaceID: place.DefaultID},
		"placeId": {Date: "2025-03-15", Time: "19:30", PlaceID: "ginasio-fantasma"},
	}
	for field, input := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := env.matches.Create(context.Background(), admin, input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[field]; !ok {
				t.Fatalf("expected field error on %s, got %v", field, verr.Fields)
			}
		})
	}
}

func TestMatchService_ListScopesConfirmations(t *testing.T) {
	env := newTestEnv(t, MatchOptions{AllowPastMatches: true})
	ctx := context.Background()
	admin := env.admin(t)
	maria, mariaCaller := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")
	joao, joaoCaller := env.athleteWithLogin(t, "Joao Lima", "joao@example.com")

	m, err := env.matches.Create(ctx, admin, MatchInput{Date: "2025-03-15", Time: "19:30", PlaceID: place.DefaultID})
	require.NoError(t, err)
	_, err = env.matches.TogglePresence(ctx, mariaCaller, maria.ID, m.ID)
	require.NoError(t, err)
	_, err = env.matches.TogglePresence(ctx, joaoCaller, joao.ID, m.ID)
	require.NoError(t, err)

	filter := match.ParseFilter("", "", "", "", fixedNow, paging.Default())

	asAthlete, err := env.matches.List(ctx, mariaCaller, filter)
	require.NoError(t, err)
	require.Len(t, asAthlete.Matches.Items, 1)
	require.NotNil(t, asAthlete.Athlete)
	assert.Equal(t, maria.ID, asAthlete.Athlete.ID)
	assert.Equal(t, 2, asAthlete.Matches.Items[0].ConfirmationCount)
	assert.Equal(t, []string{maria.ID}, asAthlete.Matches.Items[0].ConfirmedAthleteIDs)
	assert.Len(t, asAthlete.Places, 1)

	asAdmin, err := env.matches.List(ctx, admin, filter)
	require.NoError(t, err)
	assert.Nil(t, asAdmin.Athlete)
	assert.ElementsMatch(t, []string{maria.ID, joao.ID}, asAdmin.Matches.Items[0].ConfirmedAthleteIDs)

	past, err := env.matches.List(ctx, admin, match.ParseFilter("past", "", "", "", fixedNow, paging.Default()))
	require.NoError(t, err)
	assert.Empty(t, past.Matches.Items)
}
