package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
)

func newOverdueFixture(t *testing.T) (*workflowFixture, *OverdueService) {
	t.Helper()
	f := newWorkflowFixture()
	notifier := NewNotificationService(f.notifications, f.users, f.mailer, zerolog.Nop())
	sweeper := NewOverdueService(f.transcripts, f.recommendations, notifier, zerolog.Nop())
	return f, sweeper
}

func TestSweepFlagsPastDueRequests(t *testing.T) {
	f, sweeper := newOverdueFixture(t)
	student := f.users.add("John Doe", "john@school.edu", models.RoleStudent)
	staff := f.users.add("Jane Smith", "jane@school.edu", models.RoleStaff)
	admin := f.users.add("Ada Admin", "ada@school.edu", models.RoleAdmin)

	ctx := context.Background()
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)

	overdueInput := validCreateInput()
	overdueInput.NeededByDate = "2026-08-15"
	overdue, err := f.service.Submit(ctx, student.ID, models.KindTranscript, overdueInput)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := f.service.StaffUpdate(ctx, admin.ID, models.KindTranscript, overdue.ID, &dto.StaffUpdateRequest{
		AssignedStaffID: &staff.ID,
	}); err != nil {
		t.Fatalf("assignment failed: %v", err)
	}

	futureInput := validCreateInput()
	futureInput.NeededByDate = "2026-12-01"
	if _, err := f.service.Submit(ctx, student.ID, models.KindTranscript, futureInput); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	doneInput := validCreateInput()
	doneInput.NeededByDate = "2026-08-01"
	done, err := f.service.Submit(ctx, student.ID, models.KindTranscript, doneInput)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	status := "Completed"
	if _, err := f.service.StaffUpdate(ctx, staff.ID, models.KindTranscript, done.ID, &dto.StaffUpdateRequest{
		Status: &status,
	}); err != nil {
		t.Fatalf("status change failed: %v", err)
	}

	staffBefore := len(f.notifications.titlesFor(staff.ID))
	adminBefore := len(f.notifications.titlesFor(admin.ID))
	if flagged := sweeper.Sweep(ctx, now); flagged != 1 {
		t.Fatalf("sweep flagged %d requests, want 1", flagged)
	}

	// Admins own the overdue queue; the assigned staff member is not pinged
	titles := f.notifications.titlesFor(admin.ID)
	if len(titles) != adminBefore+1 || titles[len(titles)-1] != "Overdue Transcript Request" {
		t.Errorf("admin notifications after sweep = %v", titles)
	}
	if got := f.notifications.titlesFor(staff.ID); len(got) != staffBefore {
		t.Errorf("assigned staff notified by the sweep: %v", got)
	}

	stored, _ := f.transcripts.GetByID(ctx, overdue.ID)
	if stored.OverdueNotifiedDay == nil || *stored.OverdueNotifiedDay != "2026-09-01" {
		t.Errorf("day marker = %v, want 2026-09-01", stored.OverdueNotifiedDay)
	}
}

func TestSweepIsIdempotentWithinADay(t *testing.T) {
	f, sweeper := newOverdueFixture(t)
	student := f.users.add("John Doe", "john@school.edu", models.RoleStudent)
	f.users.add("Ada Admin", "ada@school.edu", models.RoleAdmin)

	ctx := context.Background()
	input := validCreateInput()
	input.NeededByDate = "2026-08-15"
	if _, err := f.service.Submit(ctx, student.ID, models.KindTranscript, input); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if flagged := sweeper.Sweep(ctx, now); flagged != 1 {
		t.Fatalf("first sweep flagged %d, want 1", flagged)
	}
	if flagged := sweeper.Sweep(ctx, now.Add(2*time.Hour)); flagged != 0 {
		t.Errorf("same-day re-sweep flagged %d, want 0", flagged)
	}

	// The next day the still-open request is flagged again
	if flagged := sweeper.Sweep(ctx, now.Add(24*time.Hour)); flagged != 1 {
		t.Errorf("next-day sweep flagged %d, want 1", flagged)
	}
}

func TestSweepNotifiesEveryAdmin(t *testing.T) {
	f, sweeper := newOverdueFixture(t)
	student := f.users.add("John Doe", "john@school.edu", models.RoleStudent)
	staff := f.users.add("Jane Smith", "jane@school.edu", models.RoleStaff)
	admin := f.users.add("Ada Admin", "ada@school.edu", models.RoleAdmin)
	second := f.users.add("Bea Bursar", "bea@school.edu", models.RoleAdmin)

	ctx := context.Background()
	input := validCreateInput()
	input.NeededByDate = "2026-08-15"
	if _, err := f.service.Submit(ctx, student.ID, models.KindRecommendation, input); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	sweeper.Sweep(ctx, time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC))

	for _, adminID := range []int64{admin.ID, second.ID} {
		titles := f.notifications.titlesFor(adminID)
		found := false
		for _, title := range titles {
			if title == "Overdue Recommendation Request" {
				found = true
			}
		}
		if !found {
			t.Errorf("admin %d missing overdue notification, got %v", adminID, titles)
		}
	}
	for _, title := range f.notifications.titlesFor(staff.ID) {
		if title == "Overdue Recommendation Request" {
			t.Error("staff notified by the sweep of an unassigned request")
		}
	}
}
