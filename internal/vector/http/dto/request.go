// Package dto provides data transfer objects for the vector HTTP layer.
package dto

import (
	"github.com/allisson/ai-service/internal/vector/usecase"
)

// EmbedRequest represents the API request for storing a text document.
type EmbedRequest struct {
	Text       string `json:"text"`
	Collection string `json:"collection"`
}

// ToEmbedInput converts an EmbedRequest DTO to an EmbedInput use case input.
func ToEmbedInput(req EmbedRequest) usecase.EmbedInput {
	return usecase.EmbedInput{
		Text:       req.Text,
		Collection: req.Collection,
	}
}

// SearchRequest represents the API request for a text search.
type SearchRequest struct {
	Query      string `json:"query"`
	Collection string `json:"collection"`
	Limit      int    `json:"limit"`
}

// ToSearchInput converts a SearchRequest DTO to a SearchInput use case input.
func ToSearchInput(req SearchRequest) usecase.SearchInput {
	return usecase.SearchInput{
		Query:      req.Query,
		Collection: req.Collection,
		Limit:      req.Limit,
	}
}
