package dto

import (
	"time"

	"github.com/campusworks/transcript-tracker/internal/app/models"
)

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role" example:"student" enums:"student,staff,admin"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserResponse maps a user model onto the wire shape
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// CreateUserRequest represents an admin creating a staff or admin account
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=staff admin"`
}

// AdminResetPasswordRequest represents an admin resetting a user's password
type AdminResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}
