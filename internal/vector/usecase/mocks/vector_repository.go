// Package mocks provides mock implementations for testing vector use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/ai-service/internal/vector/domain"
)

// MockVectorRepository is a mock implementation of VectorRepository for testing.
type MockVectorRepository struct {
	mock.Mock
}

// Insert mocks the Insert method of VectorRepository.
func (m *MockVectorRepository) Insert(ctx context.Context, collection, text string) (string, error) {
	args := m.Called(ctx, collection, text)
	return args.String(0), args.Error(1)
}

// Search mocks the Search method of VectorRepository.
func (m *MockVectorRepository) Search(
	ctx context.Context,
	collection, query string,
	limit int,
) ([]domain.SearchHit, error) {
	args := m.Called(ctx, collection, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchHit), args.Error(1)
}
