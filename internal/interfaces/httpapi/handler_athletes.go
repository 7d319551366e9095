package httpapi

import (
	"net/http"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

func (h *Handler) ListAthletes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAthletes")
	defer span.End()

	q := r.URL.Query()
	filter := athlete.ParseFilter(
		q.Get("status"),
		q.Get("billingType"),
		q.Get("position"),
		q.Get("search"),
		paging.Parse(q.Get("page"), q.Get("limit")),
	)

	page, err := h.athleteService.List(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "list athletes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pageToDTO(page, athleteListingToDTO))
}

func (h *Handler) AthleteActions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AthleteActions")
	defer span.End()

	cmd, err := h.decodeCommand(ctx, w, r, athleteCommands)
	if err != nil {
		h.logger.WarnContext(ctx, "decode athlete action failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	var (
		result  athlete.Athlete
		status  = http.StatusOK
		message string
	)
	switch c := cmd.(type) {
	case *createAthleteCommand:
		result, err = h.athleteService.Create(ctx, usecase.CreateAthleteInput{
			Name:               c.Name,
			Email:              c.Email,
			BillingType:        c.BillingType,
			PreferredPositions: c.PreferredPositions,
			IsActive:           c.IsActive,
			CreateUser:         c.CreateUser,
			UserEmail:          c.UserEmail,
			UserPassword:       c.UserPassword,
		})
		status, message = http.StatusCreated, "athlete created"
	case *updateAthleteCommand:
		result, err = h.athleteService.Update(ctx, usecase.UpdateAthleteInput{
			ID:                 c.ID,
			Name:               c.Name,
			Email:              c.Email,
			BillingType:        c.BillingType,
			PreferredPositions: c.PreferredPositions,
			IsActive:           c.IsActive,
		})
		message = "athlete updated"
	case *toggleAthleteStatusCommand:
		result, err = h.athleteService.ToggleStatus(ctx, c.ID)
		message = "athlete deactivated"
		if result.IsActive {
			message = "athlete activated"
		}
	default:
		err = usecase.InvalidField("intent", "unsupported intent "+cmd.intent())
	}
	if err != nil {
		h.logger.WarnContext(ctx, "athlete action failed", "intent", cmd.intent(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeMutation(ctx, w, status, message, athleteToDTO(result))
}
