// Package dto provides data transfer objects for the user HTTP layer.
package dto

import (
	"github.com/allisson/ai-service/internal/user/usecase"
)

// CreateUserRequest represents the API request for user creation.
type CreateUserRequest struct {
	UserName    string `json:"user_name"`
	UserSurname string `json:"user_surname"`
	Password    string `json:"password"`
}

// ToCreateUserInput converts a CreateUserRequest DTO to a CreateUserInput use case input.
func ToCreateUserInput(req CreateUserRequest) usecase.CreateUserInput {
	return usecase.CreateUserInput{
		UserName:    req.UserName,
		UserSurname: req.UserSurname,
		Password:    req.Password,
	}
}
