// backend/models/api_models.go
package models

// RegisterCompetitorRequest is the expected JSON body for POST /api/competitors.
type RegisterCompetitorRequest struct {
	PageName string  `json:"page_name"`
	PageID   *string `json:"page_id,omitempty"`
}

// StatsResponse aggregates the dashboard numbers served by /api/stats.
type StatsResponse struct {
	TotalAds          int            `json:"totalAds"`
	VeteranAds        int            `json:"veteranAds"`
	NewAds            int            `json:"newAds"`
	AvgDaysRunning    float64        `json:"avgDaysRunning"`
	CategoryBreakdown map[string]int `json:"categoryBreakdown"`
	HookBreakdown     map[string]int `json:"hookBreakdown"`
}
