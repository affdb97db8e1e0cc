package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
	"github.com/campusworks/transcript-tracker/internal/pkg/email"
)

// NotificationService persists in-app notifications and sends the matching
// emails. Delivery is best effort: a failed insert or send is logged and
// never surfaces to the workflow that triggered it.
type NotificationService struct {
	notificationRepo repositories.INotificationRepository
	userRepo         repositories.IUserRepository
	mailer           email.Mailer
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	userRepo repositories.IUserRepository,
	mailer email.Mailer,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		mailer:           mailer,
		logger:           logger,
	}
}

// Notify stores an in-app notification for a single user
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		s.logger.Error().Err(err).
			Int64("userId", n.UserID).
			Str("type", string(n.Type)).
			Msg("Failed to store notification")
	}
}

// NotifyWithEmail stores an in-app notification and sends an email
func (s *NotificationService) NotifyWithEmail(ctx context.Context, n *models.Notification, toEmail, toName, subject, body string) {
	s.Notify(ctx, n)
	if toEmail == "" {
		return
	}
	if err := s.mailer.Send(toEmail, toName, subject, body); err != nil {
		s.logger.Error().Err(err).
			Str("toEmail", toEmail).
			Str("type", string(n.Type)).
			Msg("Failed to send notification email")
	}
}

// NotifyAdmins stores a notification for every admin user. Admins are the
// intake audience; staff hear about a request when it is assigned to them.
func (s *NotificationService) NotifyAdmins(ctx context.Context, build func(userID int64) *models.Notification) {
	admins, err := s.userRepo.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list admins for notification fan-out")
		return
	}
	for _, u := range admins {
		s.Notify(ctx, build(u.ID))
	}
}

// ListForUser returns the user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID)
}

// UnreadCount returns the user's unread notification count
func (s *NotificationService) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notificationRepo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks all of the user's notifications as read
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
