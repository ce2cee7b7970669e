// backend/models/scrape_event.go
package models

import "time"

// ScrapeEvent is one immutable audit record per completed acquisition pass
// per competitor. Append-only; read back only for operator observability.
type ScrapeEvent struct {
	ID           int64     `db:"id" json:"id"`
	CompetitorID int64     `db:"competitor_id" json:"competitor_id"`
	ScrapeTime   time.Time `db:"scrape_time" json:"scrape_time"`
	AdsFound     int       `db:"ads_found" json:"ads_found"`
	NewAds       int       `db:"new_ads" json:"new_ads"`
}
