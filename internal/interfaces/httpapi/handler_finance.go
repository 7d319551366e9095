package httpapi

import (
	"net/http"

	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/nilosmferreira/damasios-ai/internal/usecase"
)

func (h *Handler) GetFinance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFinance")
	defer span.End()

	q := r.URL.Query()
	filter := finance.ParseFilter(
		q.Get("viewType"),
		q.Get("athleteId"),
		q.Get("dateFrom"),
		q.Get("dateTo"),
		paging.Parse(q.Get("page"), q.Get("limit")),
	)

	overview, err := h.financeService.Overview(ctx, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "get finance overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, financeOverviewToDTO(overview))
}

func (h *Handler) MyPendencies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MyPendencies")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	statement, err := h.financeService.MyPendencies(ctx, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "get own pendencies failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, athleteStatementToDTO(statement))
}

func (h *Handler) FinanceActions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinanceActions")
	defer span.End()

	cmd, err := h.decodeCommand(ctx, w, r, financeCommands)
	if err != nil {
		h.logger.WarnContext(ctx, "decode finance action failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	var (
		result  any
		status  = http.StatusOK
		message string
	)
	switch c := cmd.(type) {
	case *createPendingCommand:
		var created finance.Pending
		created, err = h.financeService.CreatePending(ctx, usecase.CreatePendingInput{
			AthleteID:   c.AthleteID,
			Amount:      string(c.Amount),
			DueDate:     c.DueDate,
			Description: c.Description,
		})
		result, status, message = pendingToDTO(created), http.StatusCreated, "pending created"
	case *updatePendingCommand:
		var updated finance.Pending
		updated, err = h.financeService.UpdatePending(ctx, usecase.UpdatePendingInput{
			ID:          c.ID,
			Amount:      c.Amount.ptr(),
			DueDate:     c.DueDate,
			Description: c.Description,
			Status:      c.Status,
			PaymentDate: c.PaymentDate,
		})
		result, message = pendingToDTO(updated), "pending updated"
	case *markPaidCommand:
		var paid finance.Pending
		paid, err = h.financeService.MarkPaid(ctx, c.ID, c.PaymentDate)
		result, message = pendingToDTO(paid), "pending marked as paid"
	case *createCashFlowCommand:
		var flow finance.CashFlow
		flow, err = h.financeService.RecordCashFlow(ctx, usecase.RecordCashFlowInput{
			Description: c.Description,
			Amount:      string(c.Amount),
			Type:        c.Type,
			Date:        c.Date,
		})
		result, status, message = cashFlowToDTO(flow), http.StatusCreated, "cash flow recorded"
	default:
		err = usecase.InvalidField("intent", "unsupported intent "+cmd.intent())
	}
	if err != nil {
		h.logger.WarnContext(ctx, "finance action failed", "intent", cmd.intent(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeMutation(ctx, w, status, message, result)
}
