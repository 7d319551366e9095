package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

func TestFinanceService_PendingToPaidMovesAmount(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	a, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	before, err := env.finance.Summary(ctx)
	require.NoError(t, err)

	p, err := env.finance.CreatePending(ctx, CreatePendingInput{
		AthleteID:   a.ID,
		Amount:      "100.00",
		DueDate:     fixedNow.AddDate(0, 0, 7).Format(finance.DateLayout),
		Description: "Mensalidade marco",
	})
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPending, p.Status)
	assert.Nil(t, p.PaymentDate)

	created, err := env.finance.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, created.PendingAmount.Sub(before.PendingAmount).Equal(dec("100.00")))
	assert.Equal(t, before.PendingCount+1, created.PendingCount)

	paid, err := env.finance.MarkPaid(ctx, p.ID, "")
	require.NoError(t, err)
	assert.Equal(t, finance.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaymentDate)
	assert.Equal(t, "2025-03-10", paid.PaymentDate.Format(finance.DateLayout))

	after, err := env.finance.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, after.PendingAmount.Equal(before.PendingAmount))
	assert.True(t, after.PaidAmount.Sub(before.PaidAmount).Equal(dec("100.00")))
	assert.Equal(t, created.PendingCount-1, after.PendingCount)
	assert.Equal(t, created.PaidCount+1, after.PaidCount)
}

func TestFinanceService_MarkPaidTwiceIsInvalidTransition(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	a, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	p, err := env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: a.ID, Amount: "35.50", DueDate: "2025-03-20"})
	require.NoError(t, err)

	_, err = env.finance.MarkPaid(ctx, p.ID, "2025-03-11")
	require.NoError(t, err)

	_, err = env.finance.MarkPaid(ctx, p.ID, "")
	require.ErrorIs(t, err, ErrInvalidTransition)

	stored, exists, err := env.store.Pendings().GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, exists)
	assert.Equal(t, "2025-03-11", stored.PaymentDate.Format(finance.DateLayout), "second call must not overwrite the payment")

	_, err = env.finance.MarkPaid(ctx, "00000000-0000-4000-8000-999999999999", "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFinanceService_UpdatePending(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	a, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")
	p, err := env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: a.ID, Amount: "50", DueDate: "2025-03-20"})
	require.NoError(t, err)

	amount := "75,25"
	updated, err := env.finance.UpdatePending(ctx, UpdatePendingInput{ID: p.ID, Amount: &amount})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("75.25")))

	tooLarge := "10000000000"
	_, err = env.finance.UpdatePending(ctx, UpdatePendingInput{ID: p.ID, Amount: &tooLarge})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "amount")

	status := "PAGO"
	paid, err := env.finance.UpdatePending(ctx, UpdatePendingInput{ID: p.ID, Status: &status})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid())

	description := "late edit"
	_, err = env.finance.UpdatePending(ctx, UpdatePendingInput{ID: p.ID, Description: &description})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestFinanceService_CreatePendingValidation(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	a, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	cases := []struct {
		name  string
		input CreatePendingInput
		field string
	}{
		{name: "zero amount", input: CreatePendingInput{AthleteID: a.ID, Amount: "0", DueDate: "2025-03-20"}, field: "amount"},
		{name: "above column limit", input: CreatePendingInput{AthleteID: a.ID, Amount: "10000000000.00", DueDate: "2025-03-20"}, field: "amount"},
		{name: "three decimals", input: CreatePendingInput{AthleteID: a.ID, Amount: "10.123", DueDate: "2025-03-20"}, field: "amount"},
		{name: "not a number", input: CreatePendingInput{AthleteID: a.ID, Amount: "dez", DueDate: "2025-03-20"}, field: "amount"},
		{name: "bad due date", input: CreatePendingInput{AthleteID: a.ID, Amount: "10", DueDate: "20/03/2025"}, field: "dueDate"},
		{name: "missing athlete", input: CreatePendingInput{Amount: "10", DueDate: "2025-03-20"}, field: "athleteId"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.finance.CreatePending(ctx, tc.input)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}

	_, err := env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: "00000000-0000-4000-8000-999999999999", Amount: "10", DueDate: "2025-03-20"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFinanceService_BalanceIsInflowMinusOutflow(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()

	flows := []RecordCashFlowInput{
		{Description: "Mensalidades", Amount: "300.00", Type: "INFLOW", Date: "2025-03-01"},
		{Description: "Aluguel quadra", Amount: "120.50", Type: "OUTFLOW", Date: "2025-03-02"},
		{Description: "Bolas", Amount: "89.90", Type: "OUTFLOW", Date: "2025-03-03"},
		{Description: "Patrocinio", Amount: "50", Type: "inflow", Date: "2025-03-04"},
	}
	for _, input := range flows {
		_, err := env.finance.RecordCashFlow(ctx, input)
		require.NoError(t, err)

		summary, err := env.finance.Summary(ctx)
		require.NoError(t, err)
		assert.True(t, summary.Balance.Equal(summary.TotalInflow.Sub(summary.TotalOutflow)))
	}

	summary, err := env.finance.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, summary.TotalInflow.Equal(dec("350")))
	assert.True(t, summary.TotalOutflow.Equal(dec("210.40")))
	assert.True(t, summary.Balance.Equal(dec("139.60")))
}

func TestFinanceService_RecordCashFlowValidation(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})

	_, err := env.finance.RecordCashFlow(context.Background(), RecordCashFlowInput{Amount: "-5", Type: "SIDEWAYS", Date: "ontem"})

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	for _, field := range []string{"description", "amount", "type", "date"} {
		assert.Contains(t, verr.Fields, field)
	}
	assert.Len(t, verr.Fields["date"], 1)
}

func TestFinanceService_RecordCashFlowRejectsAmountAboveLimit(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})

	_, err := env.finance.RecordCashFlow(context.Background(), RecordCashFlowInput{
		Description: "Patrocinio",
		Amount:      "10000000000",
		Type:        "INFLOW",
		Date:        "2025-03-06",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 1)
	assert.Contains(t, verr.Fields, "amount")
}

func TestFinanceService_OverviewViews(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	a, _ := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")

	open, err := env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: a.ID, Amount: "10", DueDate: "2025-03-20"})
	require.NoError(t, err)
	settled, err := env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: a.ID, Amount: "20", DueDate: "2025-03-05"})
	require.NoError(t, err)
	_, err = env.finance.MarkPaid(ctx, settled.ID, "")
	require.NoError(t, err)
	_, err = env.finance.RecordCashFlow(ctx, RecordCashFlowInput{Description: "Mensalidades", Amount: "20", Type: "INFLOW", Date: "2025-03-06"})
	require.NoError(t, err)

	all, err := env.finance.Overview(ctx, finance.ParseFilter("all", "", "", "", paging.Default()))
	require.NoError(t, err)
	require.Len(t, all.Pendencies.Items, 2)
	assert.Equal(t, open.ID, all.Pendencies.Items[0].ID, "open pendencies come first")
	assert.Equal(t, "Maria Silva", all.Pendencies.Items[0].AthleteName)
	assert.Len(t, all.CashFlows.Items, 1)
	assert.Len(t, all.Athletes, 1)

	pending, err := env.finance.Overview(ctx, finance.ParseFilter("pending", "", "", "", paging.Default()))
	require.NoError(t, err)
	require.Len(t, pending.Pendencies.Items, 1)
	assert.Empty(t, pending.CashFlows.Items)
	assert.True(t, pending.Summary.PaidAmount.Equal(dec("20")), "summary is global regardless of view")

	cashflow, err := env.finance.Overview(ctx, finance.ParseFilter("cashflow", "", "", "", paging.Default()))
	require.NoError(t, err)
	assert.Empty(t, cashflow.Pendencies.Items)
	assert.Len(t, cashflow.CashFlows.Items, 1)

	ranged, err := env.finance.Overview(ctx, finance.ParseFilter("all", "", "2025-03-01", "2025-03-05", paging.Default()))
	require.NoError(t, err)
	require.Len(t, ranged.Pendencies.Items, 1)
	assert.Equal(t, settled.ID, ranged.Pendencies.Items[0].ID)
	assert.Empty(t, ranged.CashFlows.Items)
}

func TestFinanceService_MyPendencies(t *testing.T) {
	env := newTestEnv(t, MatchOptions{})
	ctx := context.Background()
	admin := env.admin(t)
	maria, mariaCaller := env.athleteWithLogin(t, "Maria Silva", "maria@example.com")
	joao, _ := env.athleteWithLogin(t, "Joao Lima", "joao@example.com")

	_, err := env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: maria.ID, Amount: "40", DueDate: "2025-03-20"})
	require.NoError(t, err)
	_, err = env.finance.CreatePending(ctx, CreatePendingInput{AthleteID: joao.ID, Amount: "99", DueDate: "2025-03-20"})
	require.NoError(t, err)

	statement, err := env.finance.MyPendencies(ctx, mariaCaller)
	require.NoError(t, err)
	assert.Equal(t, maria.ID, statement.Athlete.ID)
	require.Len(t, statement.Pendencies, 1)
	assert.True(t, statement.Summary.PendingAmount.Equal(dec("40")))

	_, err = env.finance.MyPendencies(ctx, admin)
	require.ErrorIs(t, err, ErrForbidden)
}
