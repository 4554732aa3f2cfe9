// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/go-pwdhash"
	"github.com/google/uuid"

	"github.com/allisson/ai-service/internal/database"
	apperrors "github.com/allisson/ai-service/internal/errors"
	"github.com/allisson/ai-service/internal/user/domain"
	appValidation "github.com/allisson/ai-service/internal/validation"
)

// CreateUserInput contains the input data for user creation. The email is not
// part of the input: it is derived from the name and surname.
type CreateUserInput struct {
	UserName    string `json:"user_name"`
	UserSurname string `json:"user_surname"`
	Password    string `json:"password"`
}

// Validate validates the CreateUserInput using the jellydator/validation library.
func (i CreateUserInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.UserName,
			validation.Required.Error("user_name is required"),
			appValidation.NotBlank,
			validation.Length(3, 50).Error("user_name must be between 3 and 50 characters"),
		),
		validation.Field(&i.UserSurname,
			validation.Required.Error("user_surname is required"),
			appValidation.NotBlank,
			validation.Length(1, 50).Error("user_surname must be between 1 and 50 characters"),
		),
		validation.Field(&i.Password,
			validation.Required.Error("password is required"),
			validation.Length(6, 128).Error("password must be between 6 and 128 characters"),
		),
	)
}

// PasswordStrength classifies a password by length. Weak below 8 characters,
// medium below 12, strong at 12 and above.
func PasswordStrength(password string) string {
	switch {
	case len(password) < 8:
		return "weak"
	case len(password) < 12:
		return "medium"
	default:
		return "strong"
	}
}

// UseCase defines the interface for user business logic operations.
type UseCase interface {
	CreateUser(ctx context.Context, dbc *database.Context, input CreateUserInput) (*domain.User, error)
	GetUserByEmail(ctx context.Context, dbc *database.Context, email string) (*domain.User, error)
}

// UserRepository interface defines user repository operations. Repositories
// acquire sessions from the request Context, so it is passed explicitly.
type UserRepository interface {
	Create(ctx context.Context, dbc *database.Context, user *domain.User) error
	GetByEmail(ctx context.Context, dbc *database.Context, email string) (*domain.User, error)
}

// UserUseCase handles user-related business logic.
type UserUseCase struct {
	userRepo       UserRepository
	passwordHasher *pwdhash.PasswordHasher
	logger         *slog.Logger
}

// NewUserUseCase creates a new UserUseCase.
func NewUserUseCase(userRepo UserRepository, logger *slog.Logger) (UseCase, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &UserUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		logger:         logger,
	}, nil
}

// CreateUser validates the input, derives the canonical email from the name
// and surname, hashes the password, and persists the user. The derived email
// must pass the domain email check before anything is stored.
func (uc *UserUseCase) CreateUser(
	ctx context.Context,
	dbc *database.Context,
	input CreateUserInput,
) (*domain.User, error) {
	if err := appValidation.WrapValidationError(input.Validate()); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.UserName)
	surname := strings.TrimSpace(input.UserSurname)

	email, err := domain.NewEmail(domain.CanonicalEmail(name, surname))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("creating user",
		slog.String("email", email.String()),
		slog.String("password_strength", PasswordStrength(input.Password)),
	)

	hashedPassword, err := uc.passwordHasher.Hash([]byte(input.Password))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		Surname:  surname,
		Email:    email,
		Password: hashedPassword,
	}

	if err := uc.userRepo.Create(ctx, dbc, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (uc *UserUseCase) GetUserByEmail(
	ctx context.Context,
	dbc *database.Context,
	email string,
) (*domain.User, error) {
	return uc.userRepo.GetByEmail(ctx, dbc, email)
}
