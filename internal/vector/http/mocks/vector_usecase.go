// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/ai-service/internal/vector/domain"
	"github.com/allisson/ai-service/internal/vector/usecase"
)

// MockVectorUseCase is a mock implementation of usecase.UseCase for testing.
type MockVectorUseCase struct {
	mock.Mock
}

// Embed mocks the Embed method of usecase.UseCase.
func (m *MockVectorUseCase) Embed(ctx context.Context, input usecase.EmbedInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// Search mocks the Search method of usecase.UseCase.
func (m *MockVectorUseCase) Search(ctx context.Context, input usecase.SearchInput) (*domain.SearchResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResult), args.Error(1)
}
