package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusworks/transcript-tracker/internal/app/controllers"
	appMigrations "github.com/campusworks/transcript-tracker/internal/app/migrations"
	"github.com/campusworks/transcript-tracker/internal/app/models"
	appRepos "github.com/campusworks/transcript-tracker/internal/app/repositories"
	appRoutes "github.com/campusworks/transcript-tracker/internal/app/routes"
	appServices "github.com/campusworks/transcript-tracker/internal/app/services"
	"github.com/campusworks/transcript-tracker/internal/config"
	"github.com/campusworks/transcript-tracker/internal/db"
	appMiddleware "github.com/campusworks/transcript-tracker/internal/middleware"
	pkgAuth "github.com/campusworks/transcript-tracker/internal/pkg/auth"
	"github.com/campusworks/transcript-tracker/internal/pkg/email"
	"github.com/campusworks/transcript-tracker/internal/pkg/filestorage"
	"github.com/campusworks/transcript-tracker/internal/pkg/helpers"
	"github.com/campusworks/transcript-tracker/internal/pkg/logger"
	"github.com/campusworks/transcript-tracker/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        *appServices.AuthService
	WorkflowService    *appServices.WorkflowService
	UserService        *appServices.UserService
	AnalyticsService   *appServices.AnalyticsService
	OverdueService     *appServices.OverdueService
	AuthController     *appControllers.AuthController
	TranscriptCtrl     *appControllers.RequestController
	RecommendationCtrl *appControllers.RequestController
	NotificationCtrl   *appControllers.NotificationController
	AdminController    *appControllers.AdminController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Mailer             email.Mailer
	FileStorage        *filestorage.LocalStorage
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg.App.AdminEmail, cfg.App.AdminPassword, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Storage.UploadDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewMailer(email.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)

	notificationService := appServices.NewNotificationService(
		deps.Repos.NotificationRepository,
		deps.Repos.UserRepository,
		deps.Mailer,
		lgr,
	)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.PasswordResetRepository,
		deps.JWTService,
		deps.Mailer,
		cfg.App.FrontendURL,
		lgr,
	)

	deps.WorkflowService = appServices.NewWorkflowService(
		deps.Repos.UserRepository,
		deps.Repos.TranscriptRepository,
		deps.Repos.RecommendationRepository,
		notificationService,
		deps.FileStorage,
		lgr,
	)

	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Mailer, lgr)
	deps.AnalyticsService = appServices.NewAnalyticsService(
		deps.Repos.UserRepository,
		deps.Repos.TranscriptRepository,
		deps.Repos.RecommendationRepository,
	)
	deps.OverdueService = appServices.NewOverdueService(
		deps.Repos.TranscriptRepository,
		deps.Repos.RecommendationRepository,
		notificationService,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.TranscriptCtrl = appControllers.NewRequestController(deps.WorkflowService, models.KindTranscript, lgr)
	deps.RecommendationCtrl = appControllers.NewRequestController(deps.WorkflowService, models.KindRecommendation, lgr)
	deps.NotificationCtrl = appControllers.NewNotificationController(notificationService)
	deps.AdminController = appControllers.NewAdminController(deps.UserService, deps.AnalyticsService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.Server.CORSOrigins))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.TranscriptCtrl,
		deps.RecommendationCtrl,
		deps.NotificationCtrl,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
