// Package http provides HTTP handlers for vector store operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/ai-service/internal/errors"
	"github.com/allisson/ai-service/internal/httputil"
	"github.com/allisson/ai-service/internal/vector/http/dto"
	"github.com/allisson/ai-service/internal/vector/usecase"
)

// VectorHandler handles vector store HTTP requests.
type VectorHandler struct {
	vectorUseCase usecase.UseCase
	logger        *slog.Logger
}

// NewVectorHandler creates a new VectorHandler.
func NewVectorHandler(vectorUseCase usecase.UseCase, logger *slog.Logger) *VectorHandler {
	return &VectorHandler{
		vectorUseCase: vectorUseCase,
		logger:        logger,
	}
}

// EmbedHandler stores a text document in a collection.
// POST /api/v1/weaviate/embed - Returns 201 Created with the stored document.
func (h *VectorHandler) EmbedHandler(c *gin.Context) {
	var req dto.EmbedRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := dto.ToEmbedInput(req)
	if err := input.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	document, err := h.vectorUseCase.Embed(c.Request.Context(), input)
	if err != nil {
		h.handleVectorError(c, err)
		return
	}

	response := httputil.OK(dto.ToEmbedResponse(document), "Document embedded")
	httputil.WriteJSON(c, http.StatusCreated, response)
}

// SearchHandler runs a text search against a collection.
// POST /api/v1/weaviate/search - Returns 200 OK with the matching documents.
func (h *VectorHandler) SearchHandler(c *gin.Context) {
	var req dto.SearchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := dto.ToSearchInput(req)
	if err := input.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	result, err := h.vectorUseCase.Search(c.Request.Context(), input)
	if err != nil {
		h.handleVectorError(c, err)
		return
	}

	response := httputil.OK(dto.ToSearchResponse(result), "")
	httputil.WriteJSON(c, http.StatusOK, response)
}

// handleVectorError answers vector store failures with 200 and a failure
// envelope so clients can distinguish an unreachable store from a broken
// request. Everything else goes through the standard mapping.
func (h *VectorHandler) handleVectorError(c *gin.Context, err error) {
	if !apperrors.Is(err, apperrors.ErrVectorStore) {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.logger.Error("vector store request failed", slog.Any("error", err))
	httputil.WriteJSON(c, http.StatusOK, httputil.Fail(httputil.CodeWeaviateError, err.Error()))
}
