// Package repository provides data persistence implementations for user entities.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/ai-service/internal/database"
	"github.com/allisson/ai-service/internal/user/domain"

	apperrors "github.com/allisson/ai-service/internal/errors"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL. Sessions
// come from the request Context, so the repository itself is stateless.
type PostgreSQLUserRepository struct{}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository() *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{}
}

// Create inserts a new user inside its own autocommit scope and rebuilds the
// user from the persisted row. The stored email is re-validated on the way
// back from the database.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, dbc *database.Context, user *domain.User) error {
	return dbc.AutocommitScope(ctx, func(session *database.Session) error {
		query := `INSERT INTO users (id, name, surname, email, password, created_at, updated_at)
				  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
				  RETURNING email, created_at, updated_at`

		var storedEmail string
		err := session.QueryRowContext(
			ctx, query, user.ID, user.Name, user.Surname, user.Email.String(), user.Password,
		).Scan(&storedEmail, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			// Check for unique constraint violation (duplicate email)
			if isPostgreSQLUniqueViolation(err) {
				return domain.ErrUserAlreadyExists
			}
			return apperrors.Wrap(err, "failed to create user")
		}

		email, err := domain.NewEmail(storedEmail)
		if err != nil {
			return err
		}
		user.Email = email
		return nil
	})
}

// GetByEmail retrieves a user by email. The lookup runs in a plain session
// scope since nothing needs to commit.
func (r *PostgreSQLUserRepository) GetByEmail(ctx context.Context, dbc *database.Context, email string) (*domain.User, error) {
	var user domain.User

	err := dbc.WithSession(ctx, func(session *database.Session) error {
		query := `SELECT id, name, surname, email, password, created_at, updated_at
				  FROM users WHERE email = $1`

		var storedEmail string
		err := session.QueryRowContext(ctx, query, email).Scan(
			&user.ID, &user.Name, &user.Surname, &storedEmail, &user.Password,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return apperrors.Wrap(err, "failed to get user by email")
		}

		user.Email, err = domain.NewEmail(storedEmail)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint" or "pq: duplicate key"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
