package services

import (
	"context"
	"testing"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
)

func TestAnalyticsSummary(t *testing.T) {
	f := newWorkflowFixture()
	alice := f.users.add("Alice Adams", "alice@school.edu", models.RoleStudent)
	bob := f.users.add("Bob Brown", "bob@school.edu", models.RoleStudent)
	staff := f.users.add("Jane Smith", "jane@school.edu", models.RoleStaff)
	f.users.add("Ada Admin", "ada@school.edu", models.RoleAdmin)

	ctx := context.Background()
	if _, err := f.service.Submit(ctx, alice.ID, models.KindTranscript, validCreateInput()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	second, err := f.service.Submit(ctx, bob.ID, models.KindTranscript, validCreateInput())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := f.service.Submit(ctx, alice.ID, models.KindRecommendation, validCreateInput()); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	status := "Completed"
	if _, err := f.service.StaffUpdate(ctx, staff.ID, models.KindTranscript, second.ID, &dto.StaffUpdateRequest{
		Status: &status,
	}); err != nil {
		t.Fatalf("status change failed: %v", err)
	}

	analytics := NewAnalyticsService(f.users, f.transcripts, f.recommendations)
	summary, err := analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalRequests != 3 {
		t.Errorf("TotalRequests = %d, want 3", summary.TotalRequests)
	}
	if summary.Transcripts.Total != 2 || summary.Recommendations.Total != 1 {
		t.Errorf("per-kind totals = %d/%d, want 2/1", summary.Transcripts.Total, summary.Recommendations.Total)
	}
	if summary.Transcripts.ByStatus["Pending"] != 1 || summary.Transcripts.ByStatus["Completed"] != 1 {
		t.Errorf("transcript ByStatus = %v", summary.Transcripts.ByStatus)
	}
	if summary.TotalUsers != 4 || summary.StudentCount != 2 || summary.StaffCount != 1 {
		t.Errorf("user counts = total %d, students %d, staff %d", summary.TotalUsers, summary.StudentCount, summary.StaffCount)
	}
}
