package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
	"github.com/nilosmferreira/damasios-ai/internal/domain/finance"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	qb "github.com/nilosmferreira/damasios-ai/internal/platform/querybuilder"
)

const athleteColumns = "id, name, email, billing_type, preferred_positions, is_active, user_id, created_at, updated_at"

type AthleteRepository struct {
	db *sqlx.DB
}

func NewAthleteRepository(db *sqlx.DB) *AthleteRepository {
	return &AthleteRepository{db: db}
}

func (r *AthleteRepository) Create(ctx context.Context, a athlete.Athlete, account *user.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap(err, "begin create athlete tx")
	}
	defer rollback(tx)

	if account != nil {
		if err := insertUser(ctx, tx, *account); err != nil {
			return err
		}
		a.UserID = account.ID
	}

	query, args, err := qb.InsertModel("athletes", newAthleteTableModel(a), "")
	if err != nil {
		return fmt.Errorf("build insert athlete query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return athleteWriteError(err, "insert athlete")
	}

	if err := tx.Commit(); err != nil {
		return wrap(err, "commit create athlete tx")
	}
	return nil
}

func athleteWriteError(err error, op string) error {
	if name, ok := uniqueViolation(err); ok {
		switch name {
		case constraintAthletesEmail:
			return athlete.ErrDuplicateEmail
		case constraintAthletesUserID:
			return athlete.ErrUserAlreadyLinked
		}
	}
	return wrap(err, op)
}

// Update rewrites the editable columns; user_id and created_at are left untouched.
func (r *AthleteRepository) Update(ctx context.Context, a athlete.Athlete) (bool, error) {
	row := newAthleteTableModel(a)
	query, args, err := qb.Update("athletes").
		Set("name", row.Name).
		Set("email", row.Email).
		Set("billing_type", row.BillingType).
		Set("preferred_positions", row.PreferredPositions).
		Set("is_active", row.IsActive).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("id", a.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update athlete query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, athleteWriteError(err, "update athlete")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err, "update athlete rows affected")
	}
	return affected > 0, nil
}

func (r *AthleteRepository) ToggleActive(ctx context.Context, id string, now time.Time) (athlete.Athlete, bool, error) {
	query, args, err := qb.Update("athletes").
		SetExpr("is_active", "NOT is_active").
		Set("updated_at", now).
		Where(qb.Eq("id", id)).
		Suffix("RETURNING " + athleteColumns).
		ToSQL()
	if err != nil {
		return athlete.Athlete{}, false, fmt.Errorf("build toggle athlete query: %w", err)
	}

	var row athleteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return athlete.Athlete{}, false, nil
		}
		return athlete.Athlete{}, false, wrap(err, "toggle athlete")
	}
	return row.toDomain(), true, nil
}

func (r *AthleteRepository) GetByID(ctx context.Context, id string) (athlete.Athlete, bool, error) {
	return r.getBy(ctx, qb.Eq("id", id))
}

func (r *AthleteRepository) GetByUserID(ctx context.Context, userID string) (athlete.Athlete, bool, error) {
	if userID == "" {
		return athlete.Athlete{}, false, nil
	}
	return r.getBy(ctx, qb.Eq("user_id", userID))
}

func (r *AthleteRepository) getBy(ctx context.Context, cond qb.Condition) (athlete.Athlete, bool, error) {
	query, args, err := qb.Select(athleteColumns).From("athletes").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return athlete.Athlete{}, false, fmt.Errorf("build select athlete query: %w", err)
	}

	var row athleteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return athlete.Athlete{}, false, nil
		}
		return athlete.Athlete{}, false, wrap(err, "get athlete")
	}
	return row.toDomain(), true, nil
}

func (r *AthleteRepository) List(ctx context.Context, filter athlete.Filter) ([]athlete.Listing, error) {
	query, args, err := athleteListQuery(filter).
		OrderBy("a.created_at DESC", "a.id").
		Limit(filter.Page.Normalize().Limit).
		Offset(filter.Page.Offset()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list athletes query: %w", err)
	}

	var rows []athleteListingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list athletes")
	}

	out := make([]athlete.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AthleteRepository) Count(ctx context.Context, filter athlete.Filter) (int, error) {
	query, args, err := athleteListQuery(filter).Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count athletes query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, wrap(err, "count athletes")
	}
	return total, nil
}

func (r *AthleteRepository) ListActive(ctx context.Context) ([]athlete.Athlete, error) {
	query, args, err := qb.Select(athleteColumns).From("athletes").
		Where(qb.Eq("is_active", true)).
		OrderBy("name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list active athletes query: %w", err)
	}

	var rows []athleteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list active athletes")
	}

	out := make([]athlete.Athlete, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func athleteListQuery(filter athlete.Filter) *qb.SelectBuilder {
	b := qb.Select(
		"a.id", "a.name", "a.email", "a.billing_type", "a.preferred_positions", "a.is_active",
		"a.user_id", "a.created_at", "a.updated_at",
		"u.email AS user_email", "u.role AS user_role",
		"(SELECT COUNT(*) FROM match_confirmations c WHERE c.athlete_id = a.id) AS confirmation_count",
		"(SELECT COUNT(*) FROM participations p WHERE p.athlete_id = a.id) AS participation_count",
		"(SELECT COUNT(*) FROM financial_pendencies f WHERE f.athlete_id = a.id AND f.status = '"+string(finance.StatusPending)+"') AS pending_count",
	).From("athletes a LEFT JOIN users u ON u.id = a.user_id")

	switch filter.Status {
	case athlete.StatusActive:
		b.Where(qb.Eq("a.is_active", true))
	case athlete.StatusInactive:
		b.Where(qb.Eq("a.is_active", false))
	}
	if filter.BillingType != "" {
		b.Where(qb.Eq("a.billing_type", string(filter.BillingType)))
	}
	if filter.Position != "" {
		b.Where(qb.Any("a.preferred_positions", string(filter.Position)))
	}
	if filter.Search != "" {
		b.Where(qb.Or(
			qb.ContainsFold("a.name", filter.Search),
			qb.ContainsFold("a.email", filter.Search),
			qb.ContainsFold("u.email", filter.Search),
		))
	}
	return b
}
