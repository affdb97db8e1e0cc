package models

import (
	"time"
)

// Notification defines the notification model based on the 'notifications'
// table. Rows are created by the workflow engine on triggering events and only
// ever mutated to flip Read.
type Notification struct {
	ID          int64            `json:"id" db:"id" example:"1"`
	UserID      int64            `json:"userId" db:"user_id" example:"3"`
	Title       string           `json:"title" db:"title" example:"Request Status Updated"`
	Message     string           `json:"message" db:"message"`
	Type        NotificationType `json:"type" db:"type" example:"status_update"`
	Read        bool             `json:"read" db:"read" example:"false"`
	RequestID   *int64           `json:"requestId,omitempty" db:"request_id"`
	RequestKind *RequestKind     `json:"requestKind,omitempty" db:"request_kind"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
}
