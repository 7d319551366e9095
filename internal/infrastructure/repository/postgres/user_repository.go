package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/nilosmferreira/damasios-ai/internal/domain/user"
	qb "github.com/nilosmferreira/damasios-ai/internal/platform/querybuilder"
)

const userColumns = "id, email, password_hash, role, created_at, updated_at"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	return insertUser(ctx, r.db, u)
}

func insertUser(ctx context.Context, exec sqlx.ExecerContext, u user.User) error {
	query, args, err := qb.InsertModel("users", newUserTableModel(u), "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		if name, ok := uniqueViolation(err); ok && name == constraintUsersEmail {
			return user.ErrDuplicateEmail
		}
		return wrap(err, "insert user")
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, bool, error) {
	return r.getBy(ctx, qb.Eq("id", id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.getBy(ctx, qb.Eq("email", email))
}

func (r *UserRepository) getBy(ctx context.Context, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns).From("users").Where(cond).Limit(1).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build select user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, wrap(err, "get user")
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) ListOverview(ctx context.Context) ([]user.Overview, error) {
	query, args, err := qb.Select(
		"u.id", "u.email", "u.password_hash", "u.role", "u.created_at", "u.updated_at",
		"a.id AS athlete_id", "a.name AS athlete_name", "a.is_active AS athlete_active",
	).
		From("users u LEFT JOIN athletes a ON a.user_id = u.id").
		OrderBy("u.created_at DESC", "u.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userOverviewRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, wrap(err, "list users")
	}

	out := make([]user.Overview, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
