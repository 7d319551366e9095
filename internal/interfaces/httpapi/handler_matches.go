package httpapi

import (
	"net/http"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

func (h *Handler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlaces")
	defer span.End()

	places, err := h.matchService.ListPlaces(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list places failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sliceToDTO(places, placeToDTO))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	q := r.URL.Query()
	// A zero day lets the service anchor upcoming/past on its own clock.
	filter := match.ParseFilter(
		q.Get("status"),
		q.Get("placeId"),
		q.Get("dateFrom"),
		q.Get("dateTo"),
		time.Time{},
		paging.Parse(q.Get("page"), q.Get("limit")),
	)

	listing, err := h.matchService.List(ctx, principal, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchListingPayloadToDTO(listing))
}

func (h *Handler) MatchActions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchActions")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	cmd, err := h.decodeCommand(ctx, w, r, matchCommands)
	if err != nil {
		h.logger.WarnContext(ctx, "decode match action failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	switch c := cmd.(type) {
	case *createMatchCommand:
		created, err := h.matchService.Create(ctx, principal, usecase.MatchInput{
			Date:    c.Date,
			Time:    c.Time,
			PlaceID: c.PlaceID,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "create match failed", "user_id", principal.UserID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeMutation(ctx, w, http.StatusCreated, "match created", matchToDTO(created))
	case *updateMatchCommand:
		updated, err := h.matchService.Update(ctx, principal, usecase.UpdateMatchInput{
			ID:         c.ID,
			MatchInput: usecase.MatchInput{Date: c.Date, Time: c.Time, PlaceID: c.PlaceID},
		})
		if err != nil {
			h.logger.WarnContext(ctx, "update match failed", "match_id", c.ID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeMutation(ctx, w, http.StatusOK, "match updated", matchToDTO(updated))
	case *togglePresenceCommand:
		result, err := h.matchService.TogglePresence(ctx, principal, c.AthleteID, c.MatchID)
		if err != nil {
			h.logger.WarnContext(ctx, "toggle presence failed",
				"athlete_id", c.AthleteID,
				"match_id", c.MatchID,
				"error", err,
			)
			writeError(ctx, w, err)
			return
		}
		writeMutation(ctx, w, http.StatusOK, result.Message(), presenceDTO{
			AthleteID: result.AthleteID,
			MatchID:   result.MatchID,
			Confirmed: result.Confirmed,
		})
	default:
		writeError(ctx, w, usecase.InvalidField("intent", "unsupported intent "+cmd.intent()))
	}
}
