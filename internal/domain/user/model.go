package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/nilosmferreira/damasios-ai/internal/domain/validation"
)

// Role gates which surfaces a user can reach.
type Role string

const (
	RoleAdmin   Role = "ADMINISTRADOR"
	RoleAthlete Role = "ATLETA"
)

var AllRoles = map[Role]struct{}{
	RoleAdmin:   {},
	RoleAthlete: {},
}

const MinPasswordLength = 6

// ErrDuplicateEmail is returned by repositories when the email unique index rejects an insert.
var ErrDuplicateEmail = errors.New("email already registered")

// User is a login identity. PasswordHash is never exposed outside the credential layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

// Principal is the authenticated caller resolved from a session.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Overview is a user row joined with its linked athlete, if any.
type Overview struct {
	User          User
	AthleteID     string
	AthleteName   string
	AthleteActive bool
}

func (o Overview) HasAthlete() bool {
	return o.AthleteID != ""
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// ValidateCredentials checks the fields shared by login and user creation.
func ValidateCredentials(email, password string) validation.Errors {
	errs := validation.Errors{}
	if !ValidEmail(email) {
		errs.Add("email", "invalid email")
	}
	if len(password) < MinPasswordLength {
		errs.Add("password", "password must have at least 6 characters")
	}
	return errs
}

func ParseRole(raw string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := AllRoles[role]
	return role, ok
}
