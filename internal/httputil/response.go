// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/ai-service/internal/errors"
)

// Error codes returned in the response envelope.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeHTTPError       = "HTTP_ERROR"
	CodeInternalError   = "INTERNAL_ERROR"
	CodeNotFound        = "RESOURCE_NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeWeaviateError   = "WEAVIATE_ERROR"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ErrorInfo carries the error portion of a response envelope.
type ErrorInfo struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Detail  string       `json:"detail,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// PaginationMeta describes offset pagination of a list response.
type PaginationMeta struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// CursorMeta describes cursor pagination of a list response.
type CursorMeta struct {
	Next string `json:"next,omitempty"`
	Prev string `json:"prev,omitempty"`
}

// Meta groups optional response metadata.
type Meta struct {
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Cursor     *CursorMeta     `json:"cursor,omitempty"`
}

// AppResponse is the envelope returned by every endpoint. Success responses
// carry data and an optional message; failures carry an ErrorInfo. The trace
// id is filled from the request id when the response is written.
type AppResponse struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Message string     `json:"message,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	TraceID string     `json:"trace_id,omitempty"`
}

// OK builds a success envelope.
func OK(data any, message string) AppResponse {
	return AppResponse{Success: true, Data: data, Message: message}
}

// Fail builds a failure envelope.
func Fail(code, message string) AppResponse {
	return AppResponse{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}

// WriteJSON writes the envelope with the request trace id attached.
func WriteJSON(c *gin.Context, statusCode int, response AppResponse) {
	response.TraceID = requestid.Get(c)
	c.JSON(statusCode, response)
}

// HandleErrorGin maps domain errors to HTTP status codes and writes an error envelope.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorInfo ErrorInfo

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorInfo = ErrorInfo{
			Code:    CodeNotFound,
			Message: "The requested resource was not found",
			Detail:  err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		errorInfo = ErrorInfo{
			Code:    CodeConflict,
			Message: "A conflict occurred with existing data",
			Detail:  err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorInfo = ErrorInfo{
			Code:    CodeValidationError,
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorInfo = ErrorInfo{
			Code:    CodeHTTPError,
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorInfo = ErrorInfo{
			Code:    CodeHTTPError,
			Message: "You don't have permission to access this resource",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		errorInfo = ErrorInfo{
			Code:    CodeInternalError,
			Message: "An internal error occurred",
		}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorInfo.Code),
			slog.Any("error", err),
		)
	}

	WriteJSON(c, statusCode, AppResponse{Success: false, Error: &errorInfo})
}

// HandleBadRequestGin writes a 400 Bad Request envelope for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	WriteJSON(c, http.StatusBadRequest, AppResponse{
		Success: false,
		Error:   &ErrorInfo{Code: CodeHTTPError, Message: err.Error()},
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity envelope with
// per-field errors when the error is a validation.Errors map.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	errorInfo := ErrorInfo{
		Code:    CodeValidationError,
		Message: "Request validation failed",
		Errors:  fieldErrors(err),
	}
	if len(errorInfo.Errors) == 0 {
		errorInfo.Message = err.Error()
	}

	WriteJSON(c, http.StatusUnprocessableEntity, AppResponse{Success: false, Error: &errorInfo})
}

// fieldErrors flattens a validation.Errors map into a list sorted by field name.
func fieldErrors(err error) []FieldError {
	var validationErrors validation.Errors
	if !apperrors.As(err, &validationErrors) {
		return nil
	}

	fields := make([]FieldError, 0, len(validationErrors))
	for field, fieldErr := range validationErrors {
		fields = append(fields, FieldError{Field: field, Reason: fieldErr.Error()})
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
	return fields
}
