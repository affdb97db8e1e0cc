package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
	"github.com/campusworks/transcript-tracker/internal/pkg/auth"
)

// CreateDefaultData creates the default admin account if it does not exist yet.
// Every other account is created through registration or the admin API.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, adminEmail, adminPassword string, lgr zerolog.Logger) error {
	if adminEmail == "" || adminPassword == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping default admin creation")
		return nil
	}

	userRepo := repositories.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	lgr.Info().Str("email", adminEmail).Msg("Creating default admin user...")

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: passwordHash,
		FullName:     "Registrar Admin",
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(errors.New("failed to seed admin user"), err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin user created")
	return nil
}
