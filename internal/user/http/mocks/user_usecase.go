// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/ai-service/internal/database"
	"github.com/allisson/ai-service/internal/user/domain"
	"github.com/allisson/ai-service/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of usecase.UseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// CreateUser mocks the CreateUser method of usecase.UseCase.
func (m *MockUserUseCase) CreateUser(
	ctx context.Context,
	dbc *database.Context,
	input usecase.CreateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, dbc, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// GetUserByEmail mocks the GetUserByEmail method of usecase.UseCase.
func (m *MockUserUseCase) GetUserByEmail(
	ctx context.Context,
	dbc *database.Context,
	email string,
) (*domain.User, error) {
	args := m.Called(ctx, dbc, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
