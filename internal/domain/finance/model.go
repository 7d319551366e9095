package finance

import (
	"errors"
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a pendency. PENDENTE moves to PAGO once.
type Status string

const (
	StatusPending Status = "PENDENTE"
	StatusPaid    Status = "PAGO"
)

// FlowType is the direction of a cash flow entry.
type FlowType string

const (
	FlowInflow  FlowType = "INFLOW"
	FlowOutflow FlowType = "OUTFLOW"
)

var AllFlowTypes = map[FlowType]struct{}{
	FlowInflow:  {},
	FlowOutflow: {},
}

const (
	DateLayout     = "2006-01-02"
	AmountDecimals = 2
)

// MaxAmount is the largest value the NUMERIC(12, 2) amount columns hold.
var MaxAmount = decimal.RequireFromString("9999999999.99")

var (
	// ErrInvalidTransition is returned when a paid pendency is marked paid or edited again.
	ErrInvalidTransition = errors.New("pending is already paid")
	ErrUnknownAthlete    = errors.New("athlete does not exist")
)

// Pending is an amount owed by an athlete.
type Pending struct {
	ID          string
	AthleteID   string
	AthleteName string
	Amount      decimal.Decimal
	DueDate     time.Time
	Description string
	Status      Status
	PaymentDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p Pending) IsPaid() bool {
	return p.Status == StatusPaid
}

func (p Pending) Validate() validation.Errors {
	errs := ValidateAmount("amount", p.Amount)
	if p.AthleteID == "" {
		errs.Add("athleteId", "athlete is required")
	}
	if p.DueDate.IsZero() {
		errs.Add("dueDate", "due date is required")
	}
	return errs
}

// MarkPaid returns the paid copy of p. Paying twice is rejected.
func (p Pending) MarkPaid(paymentDate, now time.Time) (Pending, error) {
	if p.IsPaid() {
		return Pending{}, ErrInvalidTransition
	}
	paid := p
	paid.Status = StatusPaid
	day := paymentDate
	paid.PaymentDate = &day
	paid.UpdatedAt = now
	return paid, nil
}

func (p Pending) Clone() Pending {
	if p.PaymentDate != nil {
		day := *p.PaymentDate
		p.PaymentDate = &day
	}
	return p
}

// CashFlow is an append-only ledger entry not tied to an athlete.
type CashFlow struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Type        FlowType
	Date        time.Time
	CreatedAt   time.Time
}

func (c CashFlow) Validate() validation.Errors {
	errs := ValidateAmount("amount", c.Amount)
	if strings.TrimSpace(c.Description) == "" {
		errs.Add("description", "description is required")
	}
	if _, ok := AllFlowTypes[c.Type]; !ok {
		errs.Add("type", "invalid cash flow type")
	}
	if c.Date.IsZero() {
		errs.Add("date", "date is required")
	}
	return errs
}

func ValidateAmount(field string, amount decimal.Decimal) validation.Errors {
	errs := validation.Errors{}
	if !amount.IsPositive() {
		errs.Add(field, "amount must be greater than zero")
		return errs
	}
	if !amount.Equal(amount.Truncate(AmountDecimals)) {
		errs.Add(field, "amount must have at most 2 decimal places")
	}
	if amount.GreaterThan(MaxAmount) {
		errs.Add(field, "amount must be at most "+MaxAmount.StringFixed(AmountDecimals))
	}
	return errs
}

func ParseFlowType(raw string) (FlowType, bool) {
	value := FlowType(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := AllFlowTypes[value]
	return value, ok
}
