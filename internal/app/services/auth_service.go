package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
	"github.com/campusworks/transcript-tracker/internal/pkg/auth"
	"github.com/campusworks/transcript-tracker/internal/pkg/email"
	"github.com/campusworks/transcript-tracker/internal/pkg/validation"
)

const resetTokenTTL = time.Hour

// AuthService handles authentication operations
type AuthService struct {
	userRepo    repositories.IUserRepository
	resetRepo   repositories.IPasswordResetRepository
	jwtService  *auth.JWTService
	mailer      email.Mailer
	frontendURL string
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	resetRepo repositories.IPasswordResetRepository,
	jwtService *auth.JWTService,
	mailer email.Mailer,
	frontendURL string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		jwtService:  jwtService,
		mailer:      mailer,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// validatePassword checks the password against the account policy
func validatePassword(password string) error {
	if ok, reason := validation.CheckPassword(password); !ok {
		return apperrors.NewValidationError(reason)
	}
	return nil
}

// Register creates a new student account and logs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        emailAddr,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         models.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// GetProfile retrieves the authenticated user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ForgotPassword issues a reset token and mails it to the user. To avoid
// leaking which emails are registered, an unknown address is not an error.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = strings.ToLower(strings.TrimSpace(emailAddr))
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		s.logger.Info().Str("email", emailAddr).Msg("Password reset requested for unknown email")
		return nil
	}

	reset := &models.PasswordReset{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.frontendURL, "/"), reset.Token)
	subject, body := email.PasswordResetBody(user.FullName, resetURL)
	if err := s.mailer.Send(user.Email, user.FullName, subject, body); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
	}
	return nil
}

// VerifyResetToken checks a reset token and returns the email it belongs to
func (s *AuthService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	reset, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		return "", apperrors.ErrInvalidPasswordResetToken
	}
	if time.Now().UTC().After(reset.ExpiresAt) {
		return "", apperrors.ErrTokenExpired
	}
	return reset.Email, nil
}

// ResetPassword consumes a reset token and replaces the user's password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		return apperrors.ErrInvalidPasswordResetToken
	}
	if time.Now().UTC().After(reset.ExpiresAt) {
		return apperrors.ErrTokenExpired
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return err
	}
	if err := s.resetRepo.Delete(ctx, token); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to delete consumed reset token")
	}
	return nil
}

func (s *AuthService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.NewUserResponse(user),
	}, nil
}
