// backend/models/competitor.go
package models

import "time"

// Competitor is one tracked advertiser page. page_name is the external-world
// key: registration is idempotent per name and records are never mutated.
type Competitor struct {
	ID       int64     `db:"id" json:"id"`
	PageName string    `db:"page_name" json:"page_name"`
	PageID   *string   `db:"page_id" json:"page_id,omitempty"` // optional correlating identifier
	AddedAt  time.Time `db:"added_at" json:"added_at"`
}
