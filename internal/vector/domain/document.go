// Package domain contains the vector store entities and their invariants.
package domain

import (
	apperrors "github.com/allisson/ai-service/internal/errors"
)

// Vector store errors.
var (
	// ErrVectorStoreUnavailable marks failures talking to the vector store.
	ErrVectorStoreUnavailable = apperrors.Wrap(apperrors.ErrVectorStore, "vector store unavailable")
)

// Document is a text object stored in a vector collection.
type Document struct {
	UUID       string `json:"uuid"`
	Text       string `json:"text"`
	Collection string `json:"collection"`
}

// SearchHit is a single result of a text search. Distance is nil when the
// store does not report one for the ranking in use.
type SearchHit struct {
	UUID       string         `json:"uuid"`
	Text       string         `json:"text"`
	Distance   *float64       `json:"distance,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// SearchResult groups the hits of one search request.
type SearchResult struct {
	Query      string      `json:"query"`
	Collection string      `json:"collection"`
	Results    []SearchHit `json:"results"`
	Count      int         `json:"count"`
}
