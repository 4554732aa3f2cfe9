package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weaviate/weaviate/entities/models"

	apperrors "github.com/allisson/ai-service/internal/errors"
)

func TestParseSearchHits(t *testing.T) {
	t.Run("parses hits with additional fields", func(t *testing.T) {
		data := map[string]models.JSONObject{
			"Get": map[string]interface{}{
				"Documents": []interface{}{
					map[string]interface{}{
						"text": "first document",
						"_additional": map[string]interface{}{
							"id":       "7b1d2f9e-0000-0000-0000-000000000001",
							"distance": 0.42,
						},
					},
					map[string]interface{}{
						"text": "second document",
						"_additional": map[string]interface{}{
							"id": "7b1d2f9e-0000-0000-0000-000000000002",
						},
					},
				},
			},
		}

		hits, err := parseSearchHits(data, "Documents")
		require.NoError(t, err)
		require.Len(t, hits, 2)

		assert.Equal(t, "7b1d2f9e-0000-0000-0000-000000000001", hits[0].UUID)
		assert.Equal(t, "first document", hits[0].Text)
		require.NotNil(t, hits[0].Distance)
		assert.InDelta(t, 0.42, *hits[0].Distance, 0.0001)
		assert.Equal(t, "first document", hits[0].Properties["text"])

		assert.Nil(t, hits[1].Distance)
	})

	t.Run("missing collection key yields no hits", func(t *testing.T) {
		data := map[string]models.JSONObject{
			"Get": map[string]interface{}{},
		}

		hits, err := parseSearchHits(data, "Documents")
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("unexpected shape is a vector store error", func(t *testing.T) {
		data := map[string]models.JSONObject{}

		_, err := parseSearchHits(data, "Documents")
		assert.ErrorIs(t, err, apperrors.ErrVectorStore)
	})
}
