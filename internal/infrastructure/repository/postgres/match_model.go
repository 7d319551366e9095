package postgres

import (
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/match"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
)

type matchTableModel struct {
	ID        string    `db:"id"`
	Date      time.Time `db:"match_date"`
	StartTime string    `db:"start_time"`
	PlaceID   string    `db:"place_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newMatchTableModel(m match.Match) matchTableModel {
	return matchTableModel{
		ID:        m.ID,
		Date:      m.Date,
		StartTime: m.Time,
		PlaceID:   m.PlaceID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:        m.ID,
		Date:      match.Day(m.Date),
		Time:      match.NormalizeTime(m.StartTime),
		PlaceID:   m.PlaceID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type matchListingRow struct {
	matchTableModel
	PlaceName          string `db:"place_name"`
	PlaceAddress       string `db:"place_address"`
	ConfirmationCount  int    `db:"confirmation_count"`
	ParticipationCount int    `db:"participation_count"`
}

func (r matchListingRow) toDomain() match.Listing {
	return match.Listing{
		Match:               r.matchTableModel.toDomain(),
		Place:               place.Place{ID: r.PlaceID, Name: r.PlaceName, Address: r.PlaceAddress},
		ConfirmationCount:   r.ConfirmationCount,
		ParticipationCount:  r.ParticipationCount,
		ConfirmedAthleteIDs: []string{},
	}
}

type confirmationTableModel struct {
	ID        string    `db:"id"`
	AthleteID string    `db:"athlete_id"`
	MatchID   string    `db:"match_id"`
	CreatedAt time.Time `db:"created_at"`
}
