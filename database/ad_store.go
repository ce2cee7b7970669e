// backend/database/ad_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/adtrack/backend/models"
)

const adColumns = `id, ad_id, competitor_id, ad_type, headline, body_text, image_url,
	video_url, first_seen, last_seen, is_active, days_running, ai_category, ai_hook, ai_source`

// UpsertAd inserts a newly observed creative or refreshes the liveness of an
// existing one, keyed by ad_id. On re-observation only last_seen and is_active
// change; the originally captured creative content is preserved. The single
// INSERT ... ON DUPLICATE KEY UPDATE keeps the operation atomic per ad_id, so
// concurrent passes observing the same creative cannot lose updates.
// observedAt is passed in rather than taken from the DB clock so the longevity
// engine and the store agree on one notion of "now".
func UpsertAd(candidate models.AdCandidate, observedAt time.Time) (bool, error) {
	if DB == nil {
		return false, fmt.Errorf("database connection is not initialized")
	}
	if err := candidate.Validate(); err != nil {
		return false, err
	}

	res, err := DB.Exec(`
		INSERT INTO ads (
			ad_id, competitor_id, ad_type, headline, body_text,
			image_url, video_url, first_seen, last_seen, is_active, days_running
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, TRUE, 0)
		ON DUPLICATE KEY UPDATE
			last_seen = VALUES(last_seen),
			is_active = TRUE
	`,
		candidate.AdID, candidate.CompetitorID, candidate.AdType,
		candidate.Headline, candidate.BodyText, candidate.ImageURL,
		candidate.VideoURL, observedAt, observedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert ad %s: %w", candidate.AdID, err)
	}

	// MySQL reports 1 affected row for an insert, 2 for a duplicate-key update.
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for ad %s: %w", candidate.AdID, err)
	}
	return affected == 1, nil
}

// SetAiMetadata sets category, hook and provenance atomically for one ad.
// Returns updated=false without error when the ad_id is unknown.
func SetAiMetadata(adID, category, hook, source string) (bool, error) {
	if DB == nil {
		return false, fmt.Errorf("database connection is not initialized")
	}

	res, err := DB.Exec(`
		UPDATE ads
		SET ai_category = ?, ai_hook = ?, ai_source = ?
		WHERE ad_id = ?
	`, category, hook, source, adID)
	if err != nil {
		return false, fmt.Errorf("failed to set AI metadata for ad %s: %w", adID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows for ad %s: %w", adID, err)
	}
	return affected > 0, nil
}

// GetActiveAds returns every active ad, without the competitor join.
// Used by the longevity engine, which needs raw stored state only.
func GetActiveAds() ([]models.Ad, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT ` + adColumns + `
		FROM ads
		WHERE is_active = TRUE
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active ads: %w", err)
	}
	defer rows.Close()

	return scanAds(rows, false)
}

// UpdateAdDaysRunning writes a recomputed days_running for one ad.
func UpdateAdDaysRunning(id int64, days int) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	if _, err := DB.Exec(`UPDATE ads SET days_running = ? WHERE id = ?`, days, id); err != nil {
		return fmt.Errorf("failed to update days_running for ad id %d: %w", id, err)
	}
	return nil
}

// GetAdsNeedingAnalysis returns active ads with either AI field still unset.
// Both fields are written together, so checking either would do; checking both
// keeps the both-set-or-both-unset invariant observable.
func GetAdsNeedingAnalysis() ([]models.Ad, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT ` + adColumns + `
		FROM ads
		WHERE is_active = TRUE AND (ai_category IS NULL OR ai_hook IS NULL)
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ads needing analysis: %w", err)
	}
	defer rows.Close()

	return scanAds(rows, false)
}

// GetVeteranAds returns active ads running at least minDays, longest first.
// Ties break on ascending id so the order is stable across calls.
func GetVeteranAds(minDays, limit int) ([]models.Ad, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT a.`+joinedAdColumns()+`, COALESCE(c.page_name, 'Unknown') AS page_name
		FROM ads a
		LEFT JOIN competitors c ON a.competitor_id = c.id
		WHERE a.is_active = TRUE AND a.days_running >= ?
		ORDER BY a.days_running DESC, a.id ASC
		LIMIT ?
	`, minDays, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query veteran ads: %w", err)
	}
	defer rows.Close()

	return scanAds(rows, true)
}

// GetNewAds returns active ads first seen on or after the cutoff, newest first.
func GetNewAds(cutoff time.Time) ([]models.Ad, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT a.`+joinedAdColumns()+`, COALESCE(c.page_name, 'Unknown') AS page_name
		FROM ads a
		LEFT JOIN competitors c ON a.competitor_id = c.id
		WHERE a.is_active = TRUE AND a.first_seen >= ?
		ORDER BY a.first_seen DESC, a.id ASC
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query new ads: %w", err)
	}
	defer rows.Close()

	return scanAds(rows, true)
}

// GetAllActiveAds returns every active ad with its resolved page name,
// longest-running first.
func GetAllActiveAds() ([]models.Ad, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT a.` + joinedAdColumns() + `, COALESCE(c.page_name, 'Unknown') AS page_name
		FROM ads a
		LEFT JOIN competitors c ON a.competitor_id = c.id
		WHERE a.is_active = TRUE
		ORDER BY a.days_running DESC, a.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query all active ads: %w", err)
	}
	defer rows.Close()

	return scanAds(rows, true)
}

// MarkAdsInactiveBefore flips is_active off for ads last observed before the
// cutoff. Only the explicit stale sweep calls this; no query path does.
func MarkAdsInactiveBefore(cutoff time.Time) (int64, error) {
	if DB == nil {
		return 0, fmt.Errorf("database connection is not initialized")
	}

	res, err := DB.Exec(`
		UPDATE ads SET is_active = FALSE
		WHERE is_active = TRUE AND last_seen < ?
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale ads inactive: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for stale sweep: %w", err)
	}
	if affected > 0 {
		log.Printf("Database: Marked %d ads inactive (last seen before %s).\n", affected, cutoff.Format(time.RFC3339))
	}
	return affected, nil
}

// ResetFallbackMetadata clears AI metadata on ads that were classified by the
// local fallback, so the next enrichment pass retries the real classifier.
func ResetFallbackMetadata() (int64, error) {
	if DB == nil {
		return 0, fmt.Errorf("database connection is not initialized")
	}

	res, err := DB.Exec(`
		UPDATE ads
		SET ai_category = NULL, ai_hook = NULL, ai_source = NULL
		WHERE ai_source = ?
	`, models.AiSourceFallback)
	if err != nil {
		return 0, fmt.Errorf("failed to reset fallback metadata: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for fallback reset: %w", err)
	}
	return affected, nil
}

// joinedAdColumns prefixes the ad column list with the "a." alias used by the
// competitor join queries.
func joinedAdColumns() string {
	return `id, a.ad_id, a.competitor_id, a.ad_type, a.headline, a.body_text, a.image_url,
	a.video_url, a.first_seen, a.last_seen, a.is_active, a.days_running, a.ai_category, a.ai_hook, a.ai_source`
}

func scanAds(rows *sql.Rows, withPageName bool) ([]models.Ad, error) {
	var ads []models.Ad
	for rows.Next() {
		var a models.Ad
		var bodyText, imageURL, videoURL sql.NullString
		var aiCategory, aiHook, aiSource sql.NullString

		dest := []interface{}{
			&a.ID, &a.AdID, &a.CompetitorID, &a.AdType, &a.Headline,
			&bodyText, &imageURL, &videoURL,
			&a.FirstSeen, &a.LastSeen, &a.IsActive, &a.DaysRunning,
			&aiCategory, &aiHook, &aiSource,
		}
		if withPageName {
			dest = append(dest, &a.PageName)
		}

		if err := rows.Scan(dest...); err != nil {
			log.Printf("ERROR Database: Failed to scan ad row: %v", err)
			continue
		}

		a.BodyText = bodyText.String
		a.ImageURL = imageURL.String
		a.VideoURL = videoURL.String
		if aiCategory.Valid {
			a.AiCategory = &aiCategory.String
		}
		if aiHook.Valid {
			a.AiHook = &aiHook.String
		}
		if aiSource.Valid {
			a.AiSource = &aiSource.String
		}
		ads = append(ads, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ad rows: %w", err)
	}
	return ads, nil
}
