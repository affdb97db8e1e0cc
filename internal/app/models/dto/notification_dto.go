package dto

// UnreadCountResponse reports the number of unread notifications for the
// authenticated user
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
