// Package domain defines the core user domain entities and types.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/ai-service/internal/errors"
)

// User represents a user in the system. Users are constructed from persisted
// rows and are not mutated after creation.
type User struct {
	ID        uuid.UUID
	Name      string
	Surname   string
	Email     Email
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")

	// ErrInvalidEmail indicates the email address is malformed.
	ErrInvalidEmail = errors.Wrap(errors.ErrInvalidInput, "invalid email address")
)

// Email is a validated email address. Construction is the only way to obtain
// one, so any Email in the system has passed the well-formedness gate.
type Email struct {
	value string
}

// NewEmail validates and wraps an email address. The only check is the
// presence of an "@" character; this is a minimal well-formedness gate, not
// full RFC validation.
func NewEmail(value string) (Email, error) {
	if !strings.Contains(value, "@") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

// String returns the wrapped address unchanged.
func (e Email) String() string {
	return e.value
}

// CanonicalEmail derives the canonical address for a user: name and surname
// lower-cased and joined with a fixed domain suffix.
func CanonicalEmail(name, surname string) string {
	return strings.ToLower(name) + "." + strings.ToLower(surname) + "@example.com"
}
