package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	qb "github.com/nilosmferreira/damasios-ai/internal/platform/querybuilder"
)

type placeTableModel struct {
	ID      string `db:"id"`
	Name    string `db:"name"`
	Address string `db:"address"`
}

func (m placeTableModel) toDomain() place.Place {
	return place.Place{ID: m.ID, Name: m.Name, Address: m.Address}
}

type PlaceRepository struct {
	db *sqlx.DB
}

func NewPlaceRepository(db *sqlx.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

func (r *PlaceRepository) List(ctx context.Context) ([]place.Place, error) {
	query, args, err := qb.Select("id", "name", "address").From("places").OrderBy("created_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list places query: %w", err)
	}

	var rows []placeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list places")
	}
	out := make([]place.Place, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id string) (place.Place, bool, error) {
	query, args, err := qb.Select("id", "name", "address").From("places").Where(qb.Eq("id", id)).Limit(1).ToSQL()
	if err != nil {
		return place.Place{}, false, fmt.Errorf("build get place query: %w", err)
	}

	var row placeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return place.Place{}, false, nil
		}
		return place.Place{}, false, wrap(err, "get place")
	}
	return row.toDomain(), true, nil
}

func (r *PlaceRepository) Upsert(ctx context.Context, p place.Place) error {
	if err := p.Validate(); err != nil {
		return err
	}
	query, args, err := qb.InsertModel("places", placeTableModel{ID: p.ID, Name: p.Name, Address: p.Address},
		"ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, address = EXCLUDED.address")
	if err != nil {
		return fmt.Errorf("build upsert place query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return wrap(err, "upsert place")
	}
	return nil
}
