package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nilosmferreira/damasios-ai/internal/domain/place"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
)

// BootstrapSeed writes the default court and, when no user holds its email yet, the given
// administrator. Running it twice is a no-op.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, admin user.User) (adminCreated bool, err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, wrap(err, "begin seed tx")
	}
	defer rollback(tx)

	p := place.Default()
	placeSQL, placeArgs, err := sqlx.Named(`
INSERT INTO places (id, name, address)
VALUES (:id, :name, :address)
ON CONFLICT (id) DO NOTHING`, map[string]any{
		"id":      p.ID,
		"name":    p.Name,
		"address": p.Address,
	})
	if err != nil {
		return false, fmt.Errorf("bind seed place %s query: %w", p.ID, err)
	}
	placeSQL = tx.Rebind(placeSQL)
	if _, err := tx.ExecContext(ctx, placeSQL, placeArgs...); err != nil {
		return false, wrap(err, "seed place "+p.ID)
	}

	adminSQL, adminArgs, err := sqlx.Named(`
INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
VALUES (:id, :email, :password_hash, :role, :created_at, :updated_at)
ON CONFLICT (email) DO NOTHING`, newUserTableModel(admin))
	if err != nil {
		return false, fmt.Errorf("bind seed admin query: %w", err)
	}
	adminSQL = tx.Rebind(adminSQL)
	res, err := tx.ExecContext(ctx, adminSQL, adminArgs...)
	if err != nil {
		return false, wrap(err, "seed admin")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, wrap(err, "seed admin rows affected")
	}

	if err := tx.Commit(); err != nil {
		return false, wrap(err, "commit seed tx")
	}
	return affected > 0, nil
}
