package postgres

import (
	"database/sql"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
)

type userTableModel struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func newUserTableModel(u user.User) userTableModel {
	return userTableModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         user.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type userOverviewRow struct {
	userTableModel
	AthleteID     sql.NullString `db:"athlete_id"`
	AthleteName   sql.NullString `db:"athlete_name"`
	AthleteActive sql.NullBool   `db:"athlete_active"`
}

func (r userOverviewRow) toDomain() user.Overview {
	return user.Overview{
		User:          r.userTableModel.toDomain(),
		AthleteID:     r.AthleteID.String,
		AthleteName:   r.AthleteName.String,
		AthleteActive: r.AthleteActive.Bool,
	}
}
