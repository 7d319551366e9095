package postgres

import (
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/shopspring/decimal"
)

type pendingTableModel struct {
	ID          string          `db:"id"`
	AthleteID   string          `db:"athlete_id"`
	Amount      decimal.Decimal `db:"amount"`
	DueDate     time.Time       `db:"due_date"`
	Description string          `db:"description"`
	Status      string          `db:"status"`
	PaymentDate *time.Time      `db:"payment_date"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

func newPendingTableModel(p finance.Pending) pendingTableModel {
	return pendingTableModel{
		ID:          p.ID,
		AthleteID:   p.AthleteID,
		Amount:      p.Amount,
		DueDate:     p.DueDate,
		Description: p.Description,
		Status:      string(p.Status),
		PaymentDate: p.PaymentDate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type pendingRow struct {
	pendingTableModel
	AthleteName string `db:"athlete_name"`
}

func (r pendingRow) toDomain() finance.Pending {
	out := finance.Pending{
		ID:          r.ID,
		AthleteID:   r.AthleteID,
		AthleteName: r.AthleteName,
		Amount:      r.Amount,
		DueDate:     calendarDay(r.DueDate),
		Description: r.Description,
		Status:      finance.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.PaymentDate != nil {
		day := calendarDay(*r.PaymentDate)
		out.PaymentDate = &day
	}
	return out
}

type cashFlowTableModel struct {
	ID          string          `db:"id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"type"`
	Date        time.Time       `db:"flow_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (m cashFlowTableModel) toDomain() finance.CashFlow {
	return finance.CashFlow{
		ID:          m.ID,
		Description: m.Description,
		Amount:      m.Amount,
		Type:        finance.FlowType(m.Type),
		Date:        calendarDay(m.Date),
		CreatedAt:   m.CreatedAt,
	}
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
