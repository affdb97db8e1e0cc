package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/transcript-tracker/internal/app/models"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository           *UserRepository
	TranscriptRepository     *RequestRepository
	RecommendationRepository *RequestRepository
	NotificationRepository   *NotificationRepository
	PasswordResetRepository  *PasswordResetRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:           NewUserRepository(db),
		TranscriptRepository:     NewRequestRepository(db, models.KindTranscript),
		RecommendationRepository: NewRequestRepository(db, models.KindRecommendation),
		NotificationRepository:   NewNotificationRepository(db),
		PasswordResetRepository:  NewPasswordResetRepository(db),
	}
}
