package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
	idgen "github.com/nilosmferreira/damasios-ai/internal/platform/id"
	"github.com/nilosmferreira/damasios-ai/internal/platform/logging"
	"github.com/nilosmferreira/damasios-ai/internal/platform/paging"
	"github.com/shopspring/decimal"
)

type CreatePendingInput struct {
	AthleteID   string
	Amount      string
	DueDate     string
	Description string
}

// UpdatePendingInput edits an unpaid pendency. Setting Status to PAGO marks it paid instead.
type UpdatePendingInput struct {
	ID          string
	Amount      *string
	DueDate     *string
	Description *string
	Status      *string
	PaymentDate *string
}

type RecordCashFlowInput struct {
	Description string
	Amount      string
	Type        string
	Date        string
}

type FinanceOverview struct {
	Pendencies paging.Page[finance.Pending]
	CashFlows  paging.Page[finance.CashFlow]
	Summary    finance.Summary
	Athletes   []athlete.Athlete
}

type AthleteStatement struct {
	Athlete    athlete.Athlete
	Pendencies []finance.Pending
	Summary    finance.Summary
}

type FinanceService struct {
	pendings finance.PendingRepository
	flows    finance.CashFlowRepository
	ledger   finance.LedgerReader
	athletes athlete.Repository
	idGen    idgen.Generator
	logger   *logging.Logger
	now      func() time.Time
}

func NewFinanceService(
	pendings finance.PendingRepository,
	flows finance.CashFlowRepository,
	ledger finance.LedgerReader,
	athletes athlete.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *FinanceService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FinanceService{
		pendings: pendings,
		flows:    flows,
		ledger:   ledger,
		athletes: athletes,
		idGen:    idGen,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *FinanceService) CreatePending(ctx context.Context, input CreatePendingInput) (finance.Pending, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.CreatePending")
	defer span.End()

	errs := validation.Errors{}
	now := s.now().UTC()
	p := finance.Pending{
		AthleteID:   strings.TrimSpace(input.AthleteID),
		Amount:      parseAmount(errs, "amount", input.Amount),
		DueDate:     parseDay(errs, "dueDate", input.DueDate),
		Description: strings.TrimSpace(input.Description),
		Status:      finance.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, bad := errs["amount"]; !bad {
		errs.Merge(finance.ValidateAmount("amount", p.Amount))
	}
	if p.AthleteID == "" {
		errs.Add("athleteId", "athlete is required")
	}
	if err := Invalid(errs); err != nil {
		return finance.Pending{}, err
	}

	owner, err := s.existingAthlete(ctx, p.AthleteID)
	if err != nil {
		return finance.Pending{}, err
	}
	p.AthleteName = owner.Name

	id, err := s.idGen.NewID()
	if err != nil {
		return finance.Pending{}, fmt.Errorf("generate pending id: %w", err)
	}
	p.ID = id

	if err := s.pendings.Create(ctx, p); err != nil {
		if errors.Is(err, finance.ErrUnknownAthlete) {
			return finance.Pending{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, p.AthleteID)
		}
		return finance.Pending{}, fmt.Errorf("create pending: %w", err)
	}

	s.logger.InfoContext(ctx, "pending created", "pending_id", p.ID, "athlete_id", p.AthleteID, "amount", p.Amount.StringFixed(2))
	return p, nil
}

// MarkPaid settles a pendency. rawPaymentDate defaults to today; paying twice fails with
// ErrInvalidTransition.
func (s *FinanceService) MarkPaid(ctx context.Context, id, rawPaymentDate string) (finance.Pending, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.MarkPaid")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return finance.Pending{}, InvalidField("id", "pending id is required")
	}
	if !idgen.Valid(id) {
		return finance.Pending{}, fmt.Errorf("%w: pending id=%s", ErrNotFound, id)
	}

	now := s.now().UTC()
	paymentDate := dayOf(now)
	if strings.TrimSpace(rawPaymentDate) != "" {
		errs := validation.Errors{}
		paymentDate = parseDay(errs, "paymentDate", rawPaymentDate)
		if err := Invalid(errs); err != nil {
			return finance.Pending{}, err
		}
	}

	paid, found, err := s.pendings.MarkPaid(ctx, id, paymentDate, now)
	if err != nil {
		if errors.Is(err, finance.ErrInvalidTransition) {
			return finance.Pending{}, fmt.Errorf("%w: pending id=%s is already paid", ErrInvalidTransition, id)
		}
		return finance.Pending{}, fmt.Errorf("mark pending paid: %w", err)
	}
	if !found {
		return finance.Pending{}, fmt.Errorf("%w: pending id=%s", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "pending paid", "pending_id", id, "payment_date", paymentDate.Format(finance.DateLayout))
	return paid, nil
}

func (s *FinanceService) UpdatePending(ctx context.Context, input UpdatePendingInput) (finance.Pending, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.UpdatePending")
	defer span.End()

	if input.Status != nil {
		switch finance.Status(strings.ToUpper(strings.TrimSpace(*input.Status))) {
		case finance.StatusPaid:
			paymentDate := ""
			if input.PaymentDate != nil {
				paymentDate = *input.PaymentDate
			}
			return s.MarkPaid(ctx, input.ID, paymentDate)
		case finance.StatusPending:
		default:
			return finance.Pending{}, InvalidField("status", "invalid status")
		}
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		return finance.Pending{}, InvalidField("id", "pending id is required")
	}
	if !idgen.Valid(id) {
		return finance.Pending{}, fmt.Errorf("%w: pending id=%s", ErrNotFound, id)
	}
	current, exists, err := s.pendings.GetByID(ctx, id)
	if err != nil {
		return finance.Pending{}, fmt.Errorf("get pending: %w", err)
	}
	if !exists {
		return finance.Pending{}, fmt.Errorf("%w: pending id=%s", ErrNotFound, id)
	}
	if current.IsPaid() {
		return finance.Pending{}, fmt.Errorf("%w: pending id=%s is already paid", ErrInvalidTransition, id)
	}

	errs := validation.Errors{}
	next := current.Clone()
	if input.Amount != nil {
		next.Amount = parseAmount(errs, "amount", *input.Amount)
		if _, bad := errs["amount"]; !bad {
			errs.Merge(finance.ValidateAmount("amount", next.Amount))
		}
	}
	if input.DueDate != nil {
		next.DueDate = parseDay(errs, "dueDate", *input.DueDate)
	}
	if input.Description != nil {
		next.Description = strings.TrimSpace(*input.Description)
	}
	if err := Invalid(errs); err != nil {
		return finance.Pending{}, err
	}
	next.UpdatedAt = s.now().UTC()

	found, err := s.pendings.UpdateDetails(ctx, next)
	if err != nil {
		if errors.Is(err, finance.ErrInvalidTransition) {
			return finance.Pending{}, fmt.Errorf("%w: pending id=%s is already paid", ErrInvalidTransition, id)
		}
		return finance.Pending{}, fmt.Errorf("update pending: %w", err)
	}
	if !found {
		return finance.Pending{}, fmt.Errorf("%w: pending id=%s", ErrNotFound, id)
	}
	return next, nil
}

func (s *FinanceService) RecordCashFlow(ctx context.Context, input RecordCashFlowInput) (finance.CashFlow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.RecordCashFlow")
	defer span.End()

	errs := validation.Errors{}
	flowType, _ := finance.ParseFlowType(input.Type)
	c := finance.CashFlow{
		Description: strings.TrimSpace(input.Description),
		Amount:      parseAmount(errs, "amount", input.Amount),
		Type:        flowType,
		Date:        parseDay(errs, "date", input.Date),
		CreatedAt:   s.now().UTC(),
	}
	for field, messages := range c.Validate() {
		if _, already := errs[field]; already {
			continue
		}
		for _, msg := range messages {
			errs.Add(field, msg)
		}
	}
	if err := Invalid(errs); err != nil {
		return finance.CashFlow{}, err
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return finance.CashFlow{}, fmt.Errorf("generate cash flow id: %w", err)
	}
	c.ID = id

	if err := s.flows.Create(ctx, c); err != nil {
		return finance.CashFlow{}, fmt.Errorf("record cash flow: %w", err)
	}

	s.logger.InfoContext(ctx, "cash flow recorded", "cash_flow_id", c.ID, "type", string(c.Type), "amount", c.Amount.StringFixed(2))
	return c, nil
}

// Summary folds the whole ledger read from one snapshot.
func (s *FinanceService) Summary(ctx context.Context) (finance.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.Summary")
	defer span.End()

	pendings, flows, err := s.ledger.Ledger(ctx)
	if err != nil {
		return finance.Summary{}, fmt.Errorf("load ledger: %w", err)
	}
	return finance.Summarize(pendings, flows), nil
}

func (s *FinanceService) Overview(ctx context.Context, filter finance.Filter) (FinanceOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.Overview")
	defer span.End()

	filter.Page = filter.Page.Normalize()
	out := FinanceOverview{
		Pendencies: paging.Empty[finance.Pending](filter.Page),
		CashFlows:  paging.Empty[finance.CashFlow](filter.Page),
	}

	if filter.IncludesPendings() {
		page, err := loadPage(ctx, filter.Page,
			func(ctx context.Context) ([]finance.Pending, error) { return s.pendings.List(ctx, filter) },
			func(ctx context.Context) (int, error) { return s.pendings.Count(ctx, filter) },
		)
		if err != nil {
			return FinanceOverview{}, fmt.Errorf("list pendencies: %w", err)
		}
		out.Pendencies = page
	}
	if filter.IncludesCashFlows() {
		page, err := loadPage(ctx, filter.Page,
			func(ctx context.Context) ([]finance.CashFlow, error) { return s.flows.List(ctx, filter) },
			func(ctx context.Context) (int, error) { return s.flows.Count(ctx, filter) },
		)
		if err != nil {
			return FinanceOverview{}, fmt.Errorf("list cash flows: %w", err)
		}
		out.CashFlows = page
	}

	summary, err := s.Summary(ctx)
	if err != nil {
		return FinanceOverview{}, err
	}
	out.Summary = summary

	athletes, err := s.athletes.ListActive(ctx)
	if err != nil {
		return FinanceOverview{}, fmt.Errorf("list active athletes: %w", err)
	}
	out.Athletes = athletes

	return out, nil
}

// MyPendencies is the self-service statement of the calling athlete.
func (s *FinanceService) MyPendencies(ctx context.Context, actor user.Principal) (AthleteStatement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.MyPendencies")
	defer span.End()

	if err := RequireRole(actor, user.RoleAthlete); err != nil {
		return AthleteStatement{}, err
	}

	own, exists, err := s.athletes.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return AthleteStatement{}, fmt.Errorf("get caller athlete: %w", err)
	}
	if !exists {
		return AthleteStatement{}, fmt.Errorf("%w: no athlete linked to user", ErrNotFound)
	}

	items, err := s.pendings.ListByAthlete(ctx, own.ID)
	if err != nil {
		return AthleteStatement{}, fmt.Errorf("list athlete pendencies: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return finance.LessPending(items[i], items[j]) })

	return AthleteStatement{
		Athlete:    own,
		Pendencies: items,
		Summary:    finance.SummarizePendings(items),
	}, nil
}

func (s *FinanceService) existingAthlete(ctx context.Context, id string) (athlete.Athlete, error) {
	if !idgen.Valid(id) {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, id)
	}
	a, exists, err := s.athletes.GetByID(ctx, id)
	if err != nil {
		return athlete.Athlete{}, fmt.Errorf("get athlete: %w", err)
	}
	if !exists {
		return athlete.Athlete{}, fmt.Errorf("%w: athlete id=%s", ErrNotFound, id)
	}
	return a, nil
}

func parseAmount(errs validation.Errors, field, raw string) decimal.Decimal {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		errs.Add(field, "amount is required")
		return decimal.Zero
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		errs.Add(field, "amount must be a number")
		return decimal.Zero
	}
	return value
}

func parseDay(errs validation.Errors, field, raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		errs.Add(field, "date is required")
		return time.Time{}
	}
	value, err := time.Parse(finance.DateLayout, raw)
	if err != nil {
		errs.Add(field, "date must use YYYY-MM-DD")
		return time.Time{}
	}
	return value
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
