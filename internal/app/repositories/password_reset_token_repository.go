package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
)

// IPasswordResetRepository defines the interface for password reset token storage
type IPasswordResetRepository interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*models.PasswordReset, error)
	Delete(ctx context.Context, token string) error
}

// PasswordResetRepository manages password reset tokens in the database
type PasswordResetRepository struct {
	db *pgxpool.Pool
}

// NewPasswordResetRepository creates a new PasswordResetRepository
func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

// Create stores a new password reset token
func (r *PasswordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_resets (token, user_id, email, expires_at)
		VALUES ($1, $2, $3, $4)`,
		reset.Token, reset.UserID, reset.Email, reset.ExpiresAt)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetByToken retrieves a reset entry by its token
func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{}
	err := r.db.QueryRow(ctx, `
		SELECT token, user_id, email, expires_at, created_at
		FROM password_resets
		WHERE token = $1`, token).
		Scan(&reset.Token, &reset.UserID, &reset.Email, &reset.ExpiresAt, &reset.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error retrieving password reset token: %w", err)
	}
	return reset, nil
}

// Delete removes a reset token once consumed
func (r *PasswordResetRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_resets WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("error deleting password reset token: %w", err)
	}
	return nil
}
