// Package dto provides data transfer objects for the vector HTTP layer.
package dto

import (
	"github.com/allisson/ai-service/internal/vector/domain"
)

// EmbedResponse represents the API response for a stored document.
type EmbedResponse struct {
	UUID       string `json:"uuid"`
	Text       string `json:"text"`
	Collection string `json:"collection"`
}

// ToEmbedResponse converts a domain Document to an EmbedResponse DTO.
func ToEmbedResponse(document *domain.Document) EmbedResponse {
	return EmbedResponse{
		UUID:       document.UUID,
		Text:       document.Text,
		Collection: document.Collection,
	}
}

// SearchResponse represents the API response for a text search.
type SearchResponse struct {
	Query      string             `json:"query"`
	Collection string             `json:"collection"`
	Results    []domain.SearchHit `json:"results"`
	Count      int                `json:"count"`
}

// ToSearchResponse converts a domain SearchResult to a SearchResponse DTO.
func ToSearchResponse(result *domain.SearchResult) SearchResponse {
	return SearchResponse{
		Query:      result.Query,
		Collection: result.Collection,
		Results:    result.Results,
		Count:      result.Count,
	}
}
