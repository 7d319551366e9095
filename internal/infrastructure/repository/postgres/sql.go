package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/nilosmferreira/damasios-ai/internal/platform/storage"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgTooManyConnections  = "53300"
	pgAdminShutdown       = "57P01"
	pgConnectionClass     = "08"
)

const (
	constraintUsersEmail          = "users_email_key"
	constraintAthletesEmail       = "athletes_email_key"
	constraintAthletesUserID      = "athletes_user_id_key"
	constraintMatchesPlace        = "matches_place_id_fkey"
	constraintPendenciesAthleteID = "financial_pendencies_athlete_id_fkey"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func asPQError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

// uniqueViolation reports the violated constraint (or index) name of a 23505 error.
func uniqueViolation(err error) (string, bool) {
	pqErr, ok := asPQError(err)
	if !ok || string(pqErr.Code) != pgUniqueViolation {
		return "", false
	}
	return pqErr.Constraint, true
}

func foreignKeyViolation(err error) (string, bool) {
	pqErr, ok := asPQError(err)
	if !ok || string(pqErr.Code) != pgForeignKeyViolation {
		return "", false
	}
	return pqErr.Constraint, true
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if pqErr, ok := asPQError(err); ok {
		code := string(pqErr.Code)
		return strings.HasPrefix(code, pgConnectionClass) || code == pgTooManyConnections || code == pgAdminShutdown
	}
	return false
}

// wrap annotates err with op. Connectivity failures also match storage.ErrUnavailable.
func wrap(err error, op string) error {
	if err == nil {
		return nil
	}
	wrapped := crerr.Wrap(err, op)
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, wrapped)
	}
	return wrapped
}

func rollback(tx interface{ Rollback() error }) {
	_ = tx.Rollback()
}

// sqlDate renders the calendar day of t, letting postgres coerce it to DATE.
func sqlDate(t time.Time) string {
	return t.Format("2006-01-02")
}
