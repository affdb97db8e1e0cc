package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
)

// OverdueService runs the daily sweep that flags active requests whose
// needed-by date has passed. Each request produces at most one overdue
// notification per calendar day; the day marker on the row keeps the sweep
// idempotent across restarts.
type OverdueService struct {
	transcripts     repositories.IRequestRepository
	recommendations repositories.IRequestRepository
	notifications   *NotificationService
	logger          zerolog.Logger
}

// NewOverdueService creates a new OverdueService
func NewOverdueService(
	transcripts repositories.IRequestRepository,
	recommendations repositories.IRequestRepository,
	notifications *NotificationService,
	logger zerolog.Logger,
) *OverdueService {
	return &OverdueService{
		transcripts:     transcripts,
		recommendations: recommendations,
		notifications:   notifications,
		logger:          logger,
	}
}

// Sweep processes both collections once for the given moment. It returns the
// number of requests flagged.
func (s *OverdueService) Sweep(ctx context.Context, now time.Time) int {
	day := now.UTC().Format(dateLayout)
	flagged := 0
	for _, repo := range []repositories.IRequestRepository{s.transcripts, s.recommendations} {
		candidates, err := repo.ListOverdueCandidates(ctx, day)
		if err != nil {
			s.logger.Error().Err(err).Str("kind", string(repo.Kind())).Msg("Overdue sweep query failed")
			continue
		}
		for _, req := range candidates {
			if s.flag(ctx, repo, req, day) {
				flagged++
			}
		}
	}
	if flagged > 0 {
		s.logger.Info().Int("flagged", flagged).Str("day", day).Msg("Overdue sweep completed")
	}
	return flagged
}

func (s *OverdueService) flag(ctx context.Context, repo repositories.IRequestRepository, req *models.Request, day string) bool {
	marker := day
	req.OverdueNotifiedDay = &marker
	req.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, req); err != nil {
		s.logger.Error().Err(err).Int64("requestId", req.ID).Msg("Failed to mark request overdue")
		return false
	}

	reqID, reqKind := requestRef(req)
	message := fmt.Sprintf("%s request #%d for %s was needed by %s and is overdue",
		req.Kind.Label(), req.ID, req.StudentName, req.NeededByDate)

	// Admins own the overdue queue regardless of assignment
	s.notifications.NotifyAdmins(ctx, func(userID int64) *models.Notification {
		return &models.Notification{
			UserID:      userID,
			Title:       fmt.Sprintf("Overdue %s Request", req.Kind.Label()),
			Message:     message,
			Type:        models.NotificationOverdue,
			RequestID:   reqID,
			RequestKind: reqKind,
		}
	})

	s.logger.Warn().
		Int64("requestId", req.ID).
		Str("kind", strings.ToLower(req.Kind.Label())).
		Str("neededBy", req.NeededByDate).
		Msg("Request flagged overdue")
	return true
}

// Run starts the daily sweep loop and blocks until the context is cancelled.
// One sweep runs immediately on startup.
func (s *OverdueService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	s.Sweep(ctx, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Sweep(ctx, now)
		}
	}
}
