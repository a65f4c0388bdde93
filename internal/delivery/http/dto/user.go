package dto

import (
	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

type ProfileResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func NewProfileResponse(p user.Profile) ProfileResponse {
	return ProfileResponse{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role}
}
