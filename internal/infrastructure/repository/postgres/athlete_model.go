package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/nilosmferreira/damasios-ai/internal/domain/athlete"
)

type athleteTableModel struct {
	ID                 string         `db:"id"`
	Name               string         `db:"name"`
	Email              sql.NullString `db:"email"`
	BillingType        string         `db:"billing_type"`
	PreferredPositions pq.StringArray `db:"preferred_positions"`
	IsActive           bool           `db:"is_active"`
	UserID             sql.NullString `db:"user_id"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func newAthleteTableModel(a athlete.Athlete) athleteTableModel {
	positions := make(pq.StringArray, 0, len(a.PreferredPositions))
	for _, p := range a.PreferredPositions {
		positions = append(positions, string(p))
	}
	return athleteTableModel{
		ID:                 a.ID,
		Name:               a.Name,
		Email:              nullString(a.Email),
		BillingType:        string(a.BillingType),
		PreferredPositions: positions,
		IsActive:           a.IsActive,
		UserID:             nullString(a.UserID),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func (m athleteTableModel) toDomain() athlete.Athlete {
	positions := make([]athlete.Position, 0, len(m.PreferredPositions))
	for _, p := range m.PreferredPositions {
		positions = append(positions, athlete.Position(p))
	}
	return athlete.Athlete{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email.String,
		BillingType:        athlete.BillingType(m.BillingType),
		PreferredPositions: positions,
		IsActive:           m.IsActive,
		UserID:             m.UserID.String,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

type athleteListingRow struct {
	athleteTableModel
	UserEmail          sql.NullString `db:"user_email"`
	UserRole           sql.NullString `db:"user_role"`
	ConfirmationCount  int            `db:"confirmation_count"`
	ParticipationCount int            `db:"participation_count"`
	PendingCount       int            `db:"pending_count"`
}

func (r athleteListingRow) toDomain() athlete.Listing {
	return athlete.Listing{
		Athlete:            r.athleteTableModel.toDomain(),
		UserEmail:          r.UserEmail.String,
		UserRole:           r.UserRole.String,
		ConfirmationCount:  r.ConfirmationCount,
		ParticipationCount: r.ParticipationCount,
		PendingCount:       r.PendingCount,
	}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
