package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID           int64     `json:"id" db:"id" example:"1"`                                   // Unique identifier for the user
	Email        string    `json:"email" db:"email" example:"student@school.edu"`            // User's email address
	PasswordHash string    `json:"-" db:"password_hash"`                                     // User's hashed password (excluded from JSON)
	FullName     string    `json:"fullName" db:"full_name" example:"John Doe"`               // User's display name
	Role         RoleType  `json:"role" db:"role" example:"student"`                         // User's role (student, staff or admin)
	CreatedAt    time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"` // Timestamp when the user was last updated
}

// PasswordReset defines a single-use password reset token
type PasswordReset struct {
	Token     string    `json:"token" db:"token"`
	UserID    int64     `json:"userId" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
