// Package http provides HTTP handlers for user-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/ai-service/internal/httputil"
	"github.com/allisson/ai-service/internal/user/http/dto"
	"github.com/allisson/ai-service/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateHandler handles user creation.
// POST /api/v1/users - Returns 201 Created with the persisted user.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := dto.ToCreateUserInput(req)
	if err := input.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	dbc := httputil.SessionContext(c)
	user, err := h.userUseCase.CreateUser(c.Request.Context(), dbc, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := httputil.OK(dto.ToUserResponse(user), "User created")
	httputil.WriteJSON(c, http.StatusCreated, response)
}
