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

// MySQLUserRepository handles user persistence for MySQL.
type MySQLUserRepository struct{}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository() *MySQLUserRepository {
	return &MySQLUserRepository{}
}

// Create inserts a new user inside its own autocommit scope. MySQL has no
// RETURNING clause, so the persisted row is read back within the same
// transaction to rebuild the user.
func (r *MySQLUserRepository) Create(ctx context.Context, dbc *database.Context, user *domain.User) error {
	return dbc.AutocommitScope(ctx, func(session *database.Session) error {
		insert := `INSERT INTO users (id, name, surname, email, password, created_at, updated_at)
				   VALUES (?, ?, ?, ?, ?, NOW(), NOW())`

		_, err := session.ExecContext(
			ctx, insert, user.ID.String(), user.Name, user.Surname, user.Email.String(), user.Password,
		)
		if err != nil {
			if isMySQLDuplicateEntry(err) {
				return domain.ErrUserAlreadyExists
			}
			return apperrors.Wrap(err, "failed to create user")
		}

		readback := `SELECT email, created_at, updated_at FROM users WHERE id = ?`

		var storedEmail string
		if err := session.QueryRowContext(ctx, readback, user.ID.String()).
			Scan(&storedEmail, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return apperrors.Wrap(err, "failed to read back created user")
		}

		email, err := domain.NewEmail(storedEmail)
		if err != nil {
			return err
		}
		user.Email = email
		return nil
	})
}

// GetByEmail retrieves a user by email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, dbc *database.Context, email string) (*domain.User, error) {
	var user domain.User

	err := dbc.WithSession(ctx, func(session *database.Session) error {
		query := `SELECT id, name, surname, email, password, created_at, updated_at
				  FROM users WHERE email = ?`

		var id string
		var storedEmail string
		err := session.QueryRowContext(ctx, query, email).Scan(
			&id, &user.Name, &user.Surname, &storedEmail, &user.Password,
			&user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return apperrors.Wrap(err, "failed to get user by email")
		}

		if user.ID, err = parseUUID(id); err != nil {
			return err
		}
		user.Email, err = domain.NewEmail(storedEmail)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate key violation.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062 (23000): Duplicate entry ..."
	return strings.Contains(errMsg, "duplicate entry")
}
