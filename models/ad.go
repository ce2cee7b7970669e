// backend/models/ad.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Ad type values as observed on the ad library cards.
const (
	AdTypeVideo    = "video"
	AdTypeStatic   = "static"
	AdTypeCarousel = "carousel"
	AdTypeTextOnly = "text_only"
)

// AI classification enums. The classifier response is normalized against these;
// fallback values (raw ad type, "unknown") are deliberately outside the sets.
var (
	ValidAiCategories = map[string]bool{
		"video":        true,
		"carousel":     true,
		"static_image": true,
		"text_only":    true,
		"ugc_style":    true,
		"professional": true,
	}
	ValidAiHooks = map[string]bool{
		"emotional":           true,
		"logical":             true,
		"urgency":             true,
		"social_proof":        true,
		"curiosity":           true,
		"fear_of_missing_out": true,
	}
)

// AI metadata provenance values.
const (
	AiSourceOpenAI   = "openai"
	AiSourceFallback = "fallback"
)

// Ad is a tracked competitor creative. first_seen is set once at creation;
// last_seen and is_active are refreshed on every re-observation. days_running
// is derived and recomputed in batch, never drifting on its own.
type Ad struct {
	ID           int64     `db:"id" json:"id"`
	AdID         string    `db:"ad_id" json:"ad_id"`
	CompetitorID int64     `db:"competitor_id" json:"competitor_id"`
	AdType       string    `db:"ad_type" json:"ad_type"`
	Headline     string    `db:"headline" json:"headline"`
	BodyText     string    `db:"body_text" json:"body_text"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	VideoURL     string    `db:"video_url" json:"video_url"`
	FirstSeen    time.Time `db:"first_seen" json:"first_seen"`
	LastSeen     time.Time `db:"last_seen" json:"last_seen"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	DaysRunning  int       `db:"days_running" json:"days_running"`
	AiCategory   *string   `db:"ai_category" json:"ai_category,omitempty"`
	AiHook       *string   `db:"ai_hook" json:"ai_hook,omitempty"`
	AiSource     *string   `db:"ai_source" json:"ai_source,omitempty"`

	// Resolved at query time from the competitor registry; not a stored column.
	PageName string `db:"-" json:"page_name,omitempty"`
}

// AdCandidate is what the acquisition layer proposes for one observed creative.
// ad_id must be stable across repeated observations for dedup to function.
type AdCandidate struct {
	AdID         string `json:"ad_id"`
	CompetitorID int64  `json:"competitor_id"`
	AdType       string `json:"ad_type"`
	Headline     string `json:"headline"`
	BodyText     string `json:"body_text"`
	ImageURL     string `json:"image_url"`
	VideoURL     string `json:"video_url"`
}

// Validate rejects malformed candidates before they reach the store.
func (c AdCandidate) Validate() error {
	if strings.TrimSpace(c.AdID) == "" {
		return fmt.Errorf("ad candidate is missing ad_id")
	}
	if c.CompetitorID <= 0 {
		return fmt.Errorf("ad candidate %s has no competitor_id", c.AdID)
	}
	return nil
}

const secondsPerDay = 86400

// DaysRunning returns whole days elapsed between first observation and now.
// The difference is taken as an absolute value so clock skew that puts
// first_seen in the future never yields a negative count.
func DaysRunning(firstSeen, now time.Time) int {
	diff := now.Sub(firstSeen)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / (secondsPerDay * time.Second))
}
