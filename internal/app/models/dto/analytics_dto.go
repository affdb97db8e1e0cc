package dto

// KindAnalytics aggregates counts for a single request collection
type KindAnalytics struct {
	Total              int64            `json:"total"`
	ByStatus           map[string]int64 `json:"byStatus"`
	ByMonth            map[string]int64 `json:"byMonth"`
	ByEnrollmentStatus map[string]int64 `json:"byEnrollmentStatus"`
	ByCollectionMethod map[string]int64 `json:"byCollectionMethod"`
}

// AnalyticsResponse is the admin dashboard aggregate
type AnalyticsResponse struct {
	Transcripts     KindAnalytics `json:"transcripts"`
	Recommendations KindAnalytics `json:"recommendations"`
	TotalRequests   int64         `json:"totalRequests"`
	TotalUsers      int64         `json:"totalUsers"`
	StaffCount      int64         `json:"staffCount"`
	StudentCount    int64         `json:"studentCount"`
}
