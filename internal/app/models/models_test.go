package models

import (
	"testing"
	"time"
)

func TestStatusValidity(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusProcessing, StatusReady, StatusCompleted, StatusRejected} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	for _, s := range []Status{"", "pending", "Done", "Lost In Mail"} {
		if s.IsValid() {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	all := []Status{StatusPending, StatusInProgress, StatusProcessing, StatusReady, StatusCompleted, StatusRejected}

	// The office may move a request between any two known states, including
	// re-opening terminal ones
	for _, from := range all {
		for _, to := range all {
			if !from.CanTransitionTo(to) {
				t.Errorf("%s -> %s should be allowed", from, to)
			}
		}
	}

	if StatusPending.CanTransitionTo("Archived") {
		t.Error("transition to an unknown status should be refused")
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if !StatusCompleted.IsTerminal() || !StatusRejected.IsTerminal() {
		t.Error("Completed and Rejected are terminal")
	}
	if StatusPending.IsTerminal() || StatusReady.IsTerminal() {
		t.Error("working states are not terminal")
	}
}

func TestAppendTimeline(t *testing.T) {
	req := &Request{Status: StatusPending}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	req.AppendTimeline(StatusPending, "Request submitted", "John Doe", at)
	req.AppendTimeline(StatusInProgress, "Status changed to In Progress", "Jane Smith", at.Add(time.Hour))

	if len(req.Timeline) != 2 {
		t.Fatalf("timeline has %d entries, want 2", len(req.Timeline))
	}
	if req.CurrentTimelineStatus() != StatusInProgress {
		t.Errorf("CurrentTimelineStatus = %s", req.CurrentTimelineStatus())
	}
	if !req.UpdatedAt.Equal(at.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want the last entry's timestamp", req.UpdatedAt)
	}
}

func TestDocumentByID(t *testing.T) {
	req := &Request{Documents: []DocumentEntry{
		{ID: "a", Filename: "transcript.pdf"},
		{ID: "b", Filename: "letter.pdf"},
	}}

	if doc := req.DocumentByID("b"); doc == nil || doc.Filename != "letter.pdf" {
		t.Errorf("DocumentByID(b) = %+v", doc)
	}
	if doc := req.DocumentByID("z"); doc != nil {
		t.Errorf("DocumentByID(z) = %+v, want nil", doc)
	}
}

func TestKindLabel(t *testing.T) {
	if KindTranscript.Label() != "Transcript" || KindRecommendation.Label() != "Recommendation" {
		t.Errorf("labels = %q, %q", KindTranscript.Label(), KindRecommendation.Label())
	}
}
