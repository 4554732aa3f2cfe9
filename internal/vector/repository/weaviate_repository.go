// Package repository provides the Weaviate-backed vector store access.
package repository

import (
	"context"
	"fmt"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	apperrors "github.com/allisson/ai-service/internal/errors"
	"github.com/allisson/ai-service/internal/vector/domain"
)

// WeaviateRepository stores and searches documents in Weaviate. Every failure
// is wrapped with ErrVectorStore so callers can map it without knowing the
// client error surface.
type WeaviateRepository struct {
	client *weaviate.Client
}

// NewWeaviateRepository creates a new WeaviateRepository.
func NewWeaviateRepository(client *weaviate.Client) *WeaviateRepository {
	return &WeaviateRepository{client: client}
}

// Insert stores a text object in the given collection and returns its id.
// The collection class is created implicitly by Weaviate on first insert.
func (r *WeaviateRepository) Insert(ctx context.Context, collection, text string) (string, error) {
	created, err := r.client.Data().Creator().
		WithClassName(collection).
		WithProperties(map[string]interface{}{"text": text}).
		Do(ctx)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrVectorStore, fmt.Sprintf("failed to insert into %q: %v", collection, err))
	}

	return string(created.Object.ID), nil
}

// Search runs a BM25 query against the collection and returns up to limit hits.
func (r *WeaviateRepository) Search(
	ctx context.Context,
	collection, query string,
	limit int,
) ([]domain.SearchHit, error) {
	bm25 := r.client.GraphQL().Bm25ArgBuilder().WithQuery(query)

	fields := []graphql.Field{
		{Name: "text"},
		{Name: "_additional", Fields: []graphql.Field{
			{Name: "id"},
			{Name: "distance"},
		}},
	}

	response, err := r.client.GraphQL().Get().
		WithClassName(collection).
		WithBM25(bm25).
		WithLimit(limit).
		WithFields(fields...).
		Do(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrVectorStore, fmt.Sprintf("failed to search %q: %v", collection, err))
	}
	if len(response.Errors) > 0 {
		return nil, apperrors.Wrap(
			apperrors.ErrVectorStore,
			fmt.Sprintf("search %q rejected: %s", collection, response.Errors[0].Message),
		)
	}

	return parseSearchHits(response.Data, collection)
}

// Ready reports whether the Weaviate instance accepts requests.
func (r *WeaviateRepository) Ready(ctx context.Context) error {
	ready, err := r.client.Misc().ReadyChecker().Do(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrVectorStore, fmt.Sprintf("readiness check failed: %v", err))
	}
	if !ready {
		return domain.ErrVectorStoreUnavailable
	}
	return nil
}

// parseSearchHits walks the GraphQL response shape {Get: {<collection>: [...]}}.
// A missing collection key means no objects matched.
func parseSearchHits(data map[string]models.JSONObject, collection string) ([]domain.SearchHit, error) {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil, apperrors.Wrap(apperrors.ErrVectorStore, "unexpected search response shape")
	}

	rawObjects, ok := get[collection].([]interface{})
	if !ok {
		return []domain.SearchHit{}, nil
	}

	hits := make([]domain.SearchHit, 0, len(rawObjects))
	for _, rawObject := range rawObjects {
		object, ok := rawObject.(map[string]interface{})
		if !ok {
			continue
		}

		hit := domain.SearchHit{Properties: map[string]any{}}
		for key, value := range object {
			if key == "_additional" {
				continue
			}
			hit.Properties[key] = value
		}
		if text, ok := object["text"].(string); ok {
			hit.Text = text
		}

		if additional, ok := object["_additional"].(map[string]interface{}); ok {
			if id, ok := additional["id"].(string); ok {
				hit.UUID = id
			}
			if distance, ok := additional["distance"].(float64); ok {
				hit.Distance = &distance
			}
		}

		hits = append(hits, hit)
	}

	return hits, nil
}
