package finance

import (
	"context"
	"time"
)

type PendingRepository interface {
	// Create returns ErrUnknownAthlete when the athlete foreign key is rejected.
	Create(ctx context.Context, p Pending) error
	GetByID(ctx context.Context, id string) (Pending, bool, error)
	// MarkPaid moves a PENDENTE row to PAGO with one conditional write. found is false when no
	// row has the id; ErrInvalidTransition is returned when the row is already paid.
	MarkPaid(ctx context.Context, id string, paymentDate, now time.Time) (p Pending, found bool, err error)
	// UpdateDetails edits amount, due date and description of a PENDENTE row only.
	UpdateDetails(ctx context.Context, p Pending) (found bool, err error)
	List(ctx context.Context, filter Filter) ([]Pending, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListByAthlete(ctx context.Context, athleteID string) ([]Pending, error)
}

type CashFlowRepository interface {
	Create(ctx context.Context, c CashFlow) error
	List(ctx context.Context, filter Filter) ([]CashFlow, error)
	Count(ctx context.Context, filter Filter) (int, error)
}

// LedgerReader loads every pendency and cash flow from a single consistent snapshot.
type LedgerReader interface {
	Ledger(ctx context.Context) ([]Pending, []CashFlow, error)
}
