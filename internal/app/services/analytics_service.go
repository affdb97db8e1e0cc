package services

import (
	"context"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
)

// AnalyticsService builds the admin dashboard aggregates
type AnalyticsService struct {
	userRepo        repositories.IUserRepository
	transcripts     repositories.IRequestRepository
	recommendations repositories.IRequestRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	userRepo repositories.IUserRepository,
	transcripts repositories.IRequestRepository,
	recommendations repositories.IRequestRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:        userRepo,
		transcripts:     transcripts,
		recommendations: recommendations,
	}
}

// Summary computes request and user aggregates across both collections
func (s *AnalyticsService) Summary(ctx context.Context) (*dto.AnalyticsResponse, error) {
	transcripts, err := s.transcripts.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	recommendations, err := s.recommendations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.AnalyticsResponse{
		Transcripts:     aggregate(transcripts),
		Recommendations: aggregate(recommendations),
		TotalRequests:   int64(len(transcripts) + len(recommendations)),
		TotalUsers:      int64(len(users)),
	}
	for _, u := range users {
		switch u.Role {
		case models.RoleStaff:
			resp.StaffCount++
		case models.RoleStudent:
			resp.StudentCount++
		}
	}
	return resp, nil
}

func aggregate(requests []*models.Request) dto.KindAnalytics {
	agg := dto.KindAnalytics{
		Total:              int64(len(requests)),
		ByStatus:           map[string]int64{},
		ByMonth:            map[string]int64{},
		ByEnrollmentStatus: map[string]int64{},
		ByCollectionMethod: map[string]int64{},
	}
	for _, req := range requests {
		agg.ByStatus[string(req.Status)]++
		agg.ByMonth[req.CreatedAt.Format("2006-01")]++
		agg.ByEnrollmentStatus[req.EnrollmentStatus]++
		agg.ByCollectionMethod[req.CollectionMethod]++
	}
	return agg
}
