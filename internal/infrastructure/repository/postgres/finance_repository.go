package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	qb "github.com/nilosmferreira/damasios-ai/internal/platform/querybuilder"
)

const pendingSelectColumns = "p.id, p.athlete_id, p.amount, p.due_date, p.description, p.status, p.payment_date, p.created_at, p.updated_at, a.name AS athlete_name"

const pendingFrom = "financial_pendencies p JOIN athletes a ON a.id = p.athlete_id"

type PendingRepository struct {
	db *sqlx.DB
}

func NewPendingRepository(db *sqlx.DB) *PendingRepository {
	return &PendingRepository{db: db}
}

func (r *PendingRepository) Create(ctx context.Context, p finance.Pending) error {
	query, args, err := qb.InsertModel("financial_pendencies", newPendingTableModel(p), "")
	if err != nil {
		return fmt.Errorf("build insert pending query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if name, ok := foreignKeyViolation(err); ok && name == constraintPendenciesAthleteID {
			return finance.ErrUnknownAthlete
		}
		return wrap(err, "insert pending")
	}
	return nil
}

func (r *PendingRepository) GetByID(ctx context.Context, id string) (finance.Pending, bool, error) {
	query, args, err := qb.Select(pendingSelectColumns).From(pendingFrom).Where(qb.Eq("p.id", id)).Limit(1).ToSQL()
	if err != nil {
		return finance.Pending{}, false, fmt.Errorf("build get pending query: %w", err)
	}

	var row pendingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return finance.Pending{}, false, nil
		}
		return finance.Pending{}, false, wrap(err, "get pending")
	}
	return row.toDomain(), true, nil
}

const markPaidQuery = `
WITH paid AS (
	UPDATE financial_pendencies
	SET status = :paid, payment_date = :payment_date, updated_at = :updated_at
	WHERE id = :id AND status = :pending
	RETURNING id, athlete_id, amount, due_date, description, status, payment_date, created_at, updated_at
)
SELECT paid.*, a.name AS athlete_name
FROM paid
JOIN athletes a ON a.id = paid.athlete_id`

func (r *PendingRepository) MarkPaid(ctx context.Context, id string, paymentDate, now time.Time) (finance.Pending, bool, error) {
	query, args, err := sqlx.Named(markPaidQuery, map[string]any{
		"id":           id,
		"paid":         string(finance.StatusPaid),
		"pending":      string(finance.StatusPending),
		"payment_date": sqlDate(paymentDate),
		"updated_at":   now,
	})
	if err != nil {
		return finance.Pending{}, false, fmt.Errorf("bind mark pending paid query: %w", err)
	}
	query = r.db.Rebind(query)

	var row pendingRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err == nil {
		return row.toDomain(), true, nil
	}
	if !isNotFound(err) {
		return finance.Pending{}, false, wrap(err, "mark pending paid")
	}

	// No PENDENTE row matched: tell a missing id apart from one already paid.
	current, found, err := r.GetByID(ctx, id)
	if err != nil || !found {
		return finance.Pending{}, false, err
	}
	if current.IsPaid() {
		return finance.Pending{}, true, finance.ErrInvalidTransition
	}
	return finance.Pending{}, true, crerr.Newf("mark pending %s paid: row changed concurrently", id)
}

func (r *PendingRepository) UpdateDetails(ctx context.Context, p finance.Pending) (bool, error) {
	query, args, err := qb.Update("financial_pendencies").
		Set("amount", p.Amount).
		Set("due_date", sqlDate(p.DueDate)).
		Set("description", p.Description).
		Set("updated_at", p.UpdatedAt).
		Where(qb.Eq("id", p.ID), qb.Eq("status", string(finance.StatusPending))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update pending query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrap(err, "update pending")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err, "update pending rows affected")
	}
	if affected > 0 {
		return true, nil
	}

	_, found, err := r.GetByID(ctx, p.ID)
	if err != nil || !found {
		return false, err
	}
	return true, finance.ErrInvalidTransition
}

func (r *PendingRepository) List(ctx context.Context, filter finance.Filter) ([]finance.Pending, error) {
	query, args, err := pendingListQuery(filter).
		OrderBy("(p.status = 'PAGO')", "p.due_date", "p.id").
		Limit(filter.Page.Normalize().Limit).
		Offset(filter.Page.Offset()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pendings query: %w", err)
	}
	return r.selectPendings(ctx, query, args)
}

func (r *PendingRepository) Count(ctx context.Context, filter finance.Filter) (int, error) {
	query, args, err := pendingListQuery(filter).Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count pendings query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, wrap(err, "count pendings")
	}
	return total, nil
}

func (r *PendingRepository) ListByAthlete(ctx context.Context, athleteID string) ([]finance.Pending, error) {
	query, args, err := pendingListQuery(finance.Filter{Type: finance.ViewAll, AthleteID: athleteID}).
		OrderBy("(p.status = 'PAGO')", "p.due_date", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list athlete pendings query: %w", err)
	}
	return r.selectPendings(ctx, query, args)
}

func (r *PendingRepository) selectPendings(ctx context.Context, query string, args []any) ([]finance.Pending, error) {
	var rows []pendingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list pendings")
	}
	out := make([]finance.Pending, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func pendingListQuery(filter finance.Filter) *qb.SelectBuilder {
	b := qb.Select(pendingSelectColumns).From(pendingFrom)
	if status := filter.PendingStatus(); status != "" {
		b.Where(qb.Eq("p.status", string(status)))
	}
	if filter.AthleteID != "" {
		b.Where(qb.Eq("p.athlete_id", filter.AthleteID))
	}
	if filter.DateFrom != nil {
		b.Where(qb.Gte("p.due_date", sqlDate(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		b.Where(qb.Lte("p.due_date", sqlDate(*filter.DateTo)))
	}
	return b
}

type CashFlowRepository struct {
	db *sqlx.DB
}

func NewCashFlowRepository(db *sqlx.DB) *CashFlowRepository {
	return &CashFlowRepository{db: db}
}

func (r *CashFlowRepository) Create(ctx context.Context, c finance.CashFlow) error {
	query, args, err := qb.InsertModel("cash_flows", cashFlowTableModel{
		ID:          c.ID,
		Description: c.Description,
		Amount:      c.Amount,
		Type:        string(c.Type),
		Date:        c.Date,
		CreatedAt:   c.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert cash flow query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrap(err, "insert cash flow")
	}
	return nil
}

func (r *CashFlowRepository) List(ctx context.Context, filter finance.Filter) ([]finance.CashFlow, error) {
	query, args, err := cashFlowListQuery(filter).
		OrderBy("flow_date DESC", "created_at DESC", "id").
		Limit(filter.Page.Normalize().Limit).
		Offset(filter.Page.Offset()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list cash flows query: %w", err)
	}
	return selectCashFlows(ctx, r.db, query, args)
}

func (r *CashFlowRepository) Count(ctx context.Context, filter finance.Filter) (int, error) {
	query, args, err := cashFlowListQuery(filter).Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count cash flows query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, wrap(err, "count cash flows")
	}
	return total, nil
}

func cashFlowListQuery(filter finance.Filter) *qb.SelectBuilder {
	b := qb.Select("id", "description", "amount", "type", "flow_date", "created_at").From("cash_flows")
	if filter.DateFrom != nil {
		b.Where(qb.Gte("flow_date", sqlDate(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		b.Where(qb.Lte("flow_date", sqlDate(*filter.DateTo)))
	}
	return b
}

func selectCashFlows(ctx context.Context, q sqlx.QueryerContext, query string, args []any) ([]finance.CashFlow, error) {
	var rows []cashFlowTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, wrap(err, "list cash flows")
	}
	out := make([]finance.CashFlow, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Ledger reads both collections inside one repeatable-read snapshot.
func (r *LedgerRepository) Ledger(ctx context.Context) ([]finance.Pending, []finance.CashFlow, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, nil, wrap(err, "begin ledger tx")
	}
	defer rollback(tx)

	pendingSQL, pendingArgs, err := pendingListQuery(finance.Filter{Type: finance.ViewAll}).ToSQL()
	if err != nil {
		return nil, nil, fmt.Errorf("build ledger pendings query: %w", err)
	}
	var pendingRows []pendingRow
	if err := tx.SelectContext(ctx, &pendingRows, pendingSQL, pendingArgs...); err != nil {
		return nil, nil, wrap(err, "select ledger pendings")
	}

	flowSQL, flowArgs, err := cashFlowListQuery(finance.Filter{Type: finance.ViewAll}).ToSQL()
	if err != nil {
		return nil, nil, fmt.Errorf("build ledger cash flows query: %w", err)
	}
	flows, err := selectCashFlows(ctx, tx, flowSQL, flowArgs)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, wrap(err, "commit ledger tx")
	}

	pendings := make([]finance.Pending, 0, len(pendingRows))
	for _, row := range pendingRows {
		pendings = append(pendings, row.toDomain())
	}
	return pendings, flows, nil
}
