package usecase

import (
	"context"
	"time"

	"github.com/allisson/ai-service/internal/metrics"
	"github.com/allisson/ai-service/internal/vector/domain"
)

// vectorUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type vectorUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewVectorUseCaseWithMetrics wraps a UseCase with metrics recording.
func NewVectorUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &vectorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Embed records metrics for embed operations.
func (v *vectorUseCaseWithMetrics) Embed(ctx context.Context, input EmbedInput) (*domain.Document, error) {
	start := time.Now()
	document, err := v.next.Embed(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vector", "vector_embed", status)
	v.metrics.RecordDuration(ctx, "vector", "vector_embed", time.Since(start), status)

	return document, err
}

// Search records metrics for search operations.
func (v *vectorUseCaseWithMetrics) Search(ctx context.Context, input SearchInput) (*domain.SearchResult, error) {
	start := time.Now()
	result, err := v.next.Search(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vector", "vector_search", status)
	v.metrics.RecordDuration(ctx, "vector", "vector_search", time.Since(start), status)

	return result, err
}
