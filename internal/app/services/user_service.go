package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
	"github.com/campusworks/transcript-tracker/internal/pkg/auth"
	"github.com/campusworks/transcript-tracker/internal/pkg/email"
)

// UserService handles admin user management and the staff roster
type UserService struct {
	userRepo repositories.IUserRepository
	mailer   email.Mailer
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, mailer email.Mailer, logger zerolog.Logger) *UserService {
	return &UserService{userRepo: userRepo, mailer: mailer, logger: logger}
}

// ListUsers returns every account
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toUserResponses(users), nil
}

// ListStaff returns all staff and admin accounts, for assignment pickers
func (s *UserService) ListStaff(ctx context.Context) ([]dto.UserResponse, error) {
	staff, err := s.userRepo.ListByRole(ctx, models.RoleStaff)
	if err != nil {
		return nil, err
	}
	admins, err := s.userRepo.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return toUserResponses(append(staff, admins...)), nil
}

// CreateUser creates a staff or admin account
func (s *UserService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := models.RoleType(req.Role)
	if !role.IsValid() || role == models.RoleStudent {
		return nil, apperrors.NewValidationError("role must be staff or admin")
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("role", req.Role).Msg("User account created")
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteUser removes an account. The acting admin cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return apperrors.NewValidationError("cannot delete your own account")
	}
	return s.userRepo.Delete(ctx, id)
}

// ResetPassword lets an admin set a new password on any account. The
// affected user is told by email; a failed send does not undo the reset.
func (s *UserService) ResetPassword(ctx context.Context, id int64, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	subject, body := email.AdminPasswordResetBody(user.FullName)
	if err := s.mailer.Send(user.Email, user.FullName, subject, body); err != nil {
		s.logger.Error().Err(err).Int64("userId", id).Msg("Failed to send password reset notice")
	}
	return nil
}

func toUserResponses(users []*models.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.NewUserResponse(u))
	}
	return responses
}
