package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	qb "github.com/nilosmferreira/damasios-ai/internal/platform/querybuilder"
)

const matchColumns = "id, match_date, start_time::text AS start_time, place_id, created_at, updated_at"

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", newMatchTableModel(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchWriteError(err, "insert match")
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match) (bool, error) {
	query, args, err := qb.Update("matches").
		Set("match_date", m.Date).
		Set("start_time", m.Time).
		Set("place_id", m.PlaceID).
		Set("updated_at", m.UpdatedAt).
		Where(qb.Eq("id", m.ID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, matchWriteError(err, "update match")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err, "update match rows affected")
	}
	return affected > 0, nil
}

func matchWriteError(err error, op string) error {
	if name, ok := foreignKeyViolation(err); ok && name == constraintMatchesPlace {
		return match.ErrUnknownPlace
	}
	return wrap(err, op)
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).From("matches").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, wrap(err, "get match")
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter, scope match.ConfirmationScope) ([]match.Listing, error) {
	order := []string{"m.match_date", "m.start_time", "m.id"}
	if filter.Status == match.StatusPast {
		order[0] = "m.match_date DESC"
	}
	query, args, err := matchListQuery(filter).
		OrderBy(order...).
		Limit(filter.Page.Normalize().Limit).
		Offset(filter.Page.Offset()).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchListingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list matches")
	}

	out := make([]match.Listing, 0, len(rows))
	index := make(map[string]int, len(rows))
	ids := make([]string, 0, len(rows))
	for i, row := range rows {
		out = append(out, row.toDomain())
		index[row.ID] = i
		ids = append(ids, row.ID)
	}
	if len(ids) == 0 || (!scope.All && scope.AthleteID == "") {
		return out, nil
	}

	confirmed, err := r.confirmedAthletes(ctx, ids, scope)
	if err != nil {
		return nil, err
	}
	for _, c := range confirmed {
		i := index[c.MatchID]
		out[i].ConfirmedAthleteIDs = append(out[i].ConfirmedAthleteIDs, c.AthleteID)
	}
	return out, nil
}

func (r *MatchRepository) confirmedAthletes(ctx context.Context, matchIDs []string, scope match.ConfirmationScope) ([]confirmationTableModel, error) {
	b := qb.Select("id", "athlete_id", "match_id", "created_at").From("match_confirmations").
		Where(qb.Expr("match_id = ANY(?)", pq.Array(matchIDs)))
	if !scope.All {
		b.Where(qb.Eq("athlete_id", scope.AthleteID))
	}
	query, args, err := b.OrderBy("match_id", "athlete_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list confirmations query: %w", err)
	}

	var rows []confirmationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list confirmations")
	}
	return rows, nil
}

func (r *MatchRepository) Count(ctx context.Context, filter match.Filter) (int, error) {
	query, args, err := matchListQuery(filter).Count().ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, wrap(err, "count matches")
	}
	return total, nil
}

func matchListQuery(filter match.Filter) *qb.SelectBuilder {
	b := qb.Select(
		"m.id", "m.match_date", "m.start_time::text AS start_time", "m.place_id", "m.created_at", "m.updated_at",
		"p.name AS place_name", "p.address AS place_address",
		"(SELECT COUNT(*) FROM match_confirmations c WHERE c.match_id = m.id) AS confirmation_count",
		"(SELECT COUNT(*) FROM participations pa WHERE pa.match_id = m.id) AS participation_count",
	).From("matches m JOIN places p ON p.id = m.place_id")

	switch filter.Status {
	case match.StatusUpcoming:
		b.Where(qb.Gte("m.match_date", sqlDate(filter.Today)))
	case match.StatusPast:
		b.Where(qb.Lt("m.match_date", sqlDate(filter.Today)))
	}
	if filter.PlaceID != "" {
		b.Where(qb.Eq("m.place_id", filter.PlaceID))
	}
	if filter.DateFrom != nil {
		b.Where(qb.Gte("m.match_date", sqlDate(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		b.Where(qb.Lte("m.match_date", sqlDate(*filter.DateTo)))
	}
	return b
}

type ConfirmationRepository struct {
	db *sqlx.DB
}

func NewConfirmationRepository(db *sqlx.DB) *ConfirmationRepository {
	return &ConfirmationRepository{db: db}
}

// Toggle serializes writers of the same pair with a transaction scoped advisory lock, so
// concurrent toggles alternate instead of both inserting.
func (r *ConfirmationRepository) Toggle(ctx context.Context, c match.Confirmation) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, wrap(err, "begin toggle confirmation tx")
	}
	defer rollback(tx)

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2))`, c.AthleteID, c.MatchID); err != nil {
		return false, wrap(err, "lock confirmation pair")
	}

	deleteSQL, deleteArgs, err := qb.DeleteFrom("match_confirmations").
		Where(qb.Eq("athlete_id", c.AthleteID), qb.Eq("match_id", c.MatchID)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete confirmation query: %w", err)
	}
	res, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		return false, wrap(err, "delete confirmation")
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err, "delete confirmation rows affected")
	}

	confirmed := removed == 0
	if confirmed {
		insertSQL, insertArgs, err := qb.InsertModel("match_confirmations", confirmationTableModel{
			ID:        c.ID,
			AthleteID: c.AthleteID,
			MatchID:   c.MatchID,
			CreatedAt: c.CreatedAt,
		}, "ON CONFLICT (athlete_id, match_id) DO NOTHING")
		if err != nil {
			return false, fmt.Errorf("build insert confirmation query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return false, wrap(err, "insert confirmation")
		}
	}

	if err := tx.Commit(); err != nil {
		return false, wrap(err, "commit toggle confirmation tx")
	}
	return confirmed, nil
}

func (r *ConfirmationRepository) Exists(ctx context.Context, athleteID, matchID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM match_confirmations WHERE athlete_id = $1 AND match_id = $2)`,
		athleteID, matchID)
	if err != nil {
		return false, wrap(err, "check confirmation")
	}
	return exists, nil
}
