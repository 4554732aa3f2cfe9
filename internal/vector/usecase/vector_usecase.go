// Package usecase implements the vector store business logic.
package usecase

import (
	"context"
	"log/slog"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/ai-service/internal/validation"
	"github.com/allisson/ai-service/internal/vector/domain"
)

// DefaultSearchLimit applies when a search request does not set a limit.
const DefaultSearchLimit = 10

// EmbedInput contains the input data for storing a text document.
type EmbedInput struct {
	Text       string `json:"text"`
	Collection string `json:"collection"`
}

// Validate validates the EmbedInput using the jellydator/validation library.
func (i EmbedInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Text,
			validation.Required.Error("text is required"),
			validation.Length(1, 10000).Error("text must be between 1 and 10000 characters"),
		),
		validation.Field(&i.Collection,
			validation.Required.Error("collection is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(1, 100).Error("collection must be between 1 and 100 characters"),
		),
	)
}

// SearchInput contains the input data for a text search. A zero Limit means
// DefaultSearchLimit.
type SearchInput struct {
	Query      string `json:"query"`
	Collection string `json:"collection"`
	Limit      int    `json:"limit"`
}

// Validate validates the SearchInput using the jellydator/validation library.
func (i SearchInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Query,
			validation.Required.Error("query is required"),
			validation.Length(1, 10000).Error("query must be between 1 and 10000 characters"),
		),
		validation.Field(&i.Collection,
			validation.Required.Error("collection is required"),
			appValidation.NotBlank,
			appValidation.NoWhitespace,
			validation.Length(1, 100).Error("collection must be between 1 and 100 characters"),
		),
		validation.Field(&i.Limit,
			validation.Min(0).Error("limit must not be negative"),
			validation.Max(100).Error("limit must be at most 100"),
		),
	)
}

// UseCase defines the interface for vector store business logic operations.
type UseCase interface {
	Embed(ctx context.Context, input EmbedInput) (*domain.Document, error)
	Search(ctx context.Context, input SearchInput) (*domain.SearchResult, error)
}

// VectorRepository interface defines vector store operations.
type VectorRepository interface {
	Insert(ctx context.Context, collection, text string) (string, error)
	Search(ctx context.Context, collection, query string, limit int) ([]domain.SearchHit, error)
}

// VectorUseCase handles vector store business logic.
type VectorUseCase struct {
	vectorRepo VectorRepository
	logger     *slog.Logger
}

// NewVectorUseCase creates a new VectorUseCase.
func NewVectorUseCase(vectorRepo VectorRepository, logger *slog.Logger) UseCase {
	return &VectorUseCase{
		vectorRepo: vectorRepo,
		logger:     logger,
	}
}

// Embed validates the input and stores the text in the collection.
func (uc *VectorUseCase) Embed(ctx context.Context, input EmbedInput) (*domain.Document, error) {
	if err := appValidation.WrapValidationError(input.Validate()); err != nil {
		return nil, err
	}

	id, err := uc.vectorRepo.Insert(ctx, input.Collection, input.Text)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("document embedded",
		slog.String("collection", input.Collection),
		slog.String("uuid", id),
	)

	return &domain.Document{
		UUID:       id,
		Text:       input.Text,
		Collection: input.Collection,
	}, nil
}

// Search validates the input and runs a text search, applying the default
// limit when none is given.
func (uc *VectorUseCase) Search(ctx context.Context, input SearchInput) (*domain.SearchResult, error) {
	if err := appValidation.WrapValidationError(input.Validate()); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultSearchLimit
	}

	hits, err := uc.vectorRepo.Search(ctx, input.Collection, input.Query, limit)
	if err != nil {
		return nil, err
	}
	if hits == nil {
		hits = []domain.SearchHit{}
	}

	return &domain.SearchResult{
		Query:      input.Query,
		Collection: input.Collection,
		Results:    hits,
		Count:      len(hits),
	}, nil
}
