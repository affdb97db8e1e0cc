package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleStaff   RoleType = "staff"
	RoleAdmin   RoleType = "admin"
)

// IsValid reports whether the role is one of the closed set
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Status defines the lifecycle state of a request
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusProcessing Status = "Processing"
	StatusReady      Status = "Ready"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

// transitions is the allowed-move table. Pending may move to any working or
// terminal state; once a request has left Pending the office may move it freely
// between states (including re-opening a Completed or Rejected request), which
// matches how the registrar actually works. Editing by the student is gated on
// Pending separately.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusProcessing, StatusReady, StatusCompleted, StatusRejected},
	StatusInProgress: {StatusPending, StatusProcessing, StatusReady, StatusCompleted, StatusRejected},
	StatusProcessing: {StatusPending, StatusInProgress, StatusReady, StatusCompleted, StatusRejected},
	StatusReady:      {StatusPending, StatusInProgress, StatusProcessing, StatusCompleted, StatusRejected},
	StatusCompleted:  {StatusPending, StatusInProgress, StatusProcessing, StatusReady, StatusRejected},
	StatusRejected:   {StatusPending, StatusInProgress, StatusProcessing, StatusReady, StatusCompleted},
}

// IsValid reports whether the status is one of the closed set
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to the target status
func (s Status) CanTransitionTo(target Status) bool {
	if s == target {
		return true
	}
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status normally ends processing
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// RequestKind distinguishes the two request collections
type RequestKind string

const (
	KindTranscript     RequestKind = "transcript"
	KindRecommendation RequestKind = "recommendation"
)

// Label returns the human-readable name used in notifications and emails
func (k RequestKind) Label() string {
	if k == KindRecommendation {
		return "Recommendation"
	}
	return "Transcript"
}

// NotificationType tags the event that produced a notification
type NotificationType string

const (
	NotificationNewRequest   NotificationType = "new_request"
	NotificationStatusUpdate NotificationType = "status_update"
	NotificationAssignment   NotificationType = "assignment"
	NotificationDocument     NotificationType = "document"
	NotificationOverdue      NotificationType = "overdue"
)
