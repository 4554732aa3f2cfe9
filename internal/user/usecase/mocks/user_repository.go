// Package mocks provides mock implementations for testing user use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/ai-service/internal/database"
	"github.com/allisson/ai-service/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository for testing.
type MockUserRepository struct {
	mock.Mock
}

// Create mocks the Create method of UserRepository.
func (m *MockUserRepository) Create(ctx context.Context, dbc *database.Context, user *domain.User) error {
	args := m.Called(ctx, dbc, user)
	return args.Error(0)
}

// GetByEmail mocks the GetByEmail method of UserRepository.
func (m *MockUserRepository) GetByEmail(
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
