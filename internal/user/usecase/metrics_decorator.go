package usecase

import (
	"context"
	"time"

	"github.com/allisson/ai-service/internal/database"
	"github.com/allisson/ai-service/internal/metrics"
	"github.com/allisson/ai-service/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateUser records metrics for user creation operations.
func (u *userUseCaseWithMetrics) CreateUser(
	ctx context.Context,
	dbc *database.Context,
	input CreateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.CreateUser(ctx, dbc, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "user_create", status)
	u.metrics.RecordDuration(ctx, "user", "user_create", time.Since(start), status)

	return user, err
}

// GetUserByEmail records metrics for user lookup operations.
func (u *userUseCaseWithMetrics) GetUserByEmail(
	ctx context.Context,
	dbc *database.Context,
	email string,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByEmail(ctx, dbc, email)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "user_get_by_email", status)
	u.metrics.RecordDuration(ctx, "user", "user_get_by_email", time.Since(start), status)

	return user, err
}
