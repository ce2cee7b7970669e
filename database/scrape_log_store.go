// backend/database/scrape_log_store.go
package database

import (
	"fmt"
	"log"
	"time"

	"github.com/adtrack/backend/models"
)

// LogScrape appends one immutable audit record for a completed acquisition
// pass against a single competitor.
func LogScrape(competitorID int64, adsFound, newAds int) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	_, err := DB.Exec(`
		INSERT INTO scrape_events (competitor_id, scrape_time, ads_found, new_ads)
		VALUES (?, ?, ?, ?)
	`, competitorID, time.Now().UTC(), adsFound, newAds)
	if err != nil {
		return fmt.Errorf("failed to log scrape event for competitor %d: %w", competitorID, err)
	}

	log.Printf("Database: Logged scrape for competitor %d: %d ads found, %d new.\n", competitorID, adsFound, newAds)
	return nil
}

// GetRecentScrapeEvents returns the latest audit records, newest first.
// Not required by the core pipeline; kept for external observability.
func GetRecentScrapeEvents(limit int) ([]models.ScrapeEvent, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT id, competitor_id, scrape_time, ads_found, new_ads
		FROM scrape_events
		ORDER BY scrape_time DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scrape events: %w", err)
	}
	defer rows.Close()

	var events []models.ScrapeEvent
	for rows.Next() {
		var e models.ScrapeEvent
		if err := rows.Scan(&e.ID, &e.CompetitorID, &e.ScrapeTime, &e.AdsFound, &e.NewAds); err != nil {
			log.Printf("ERROR Database: Failed to scan scrape event row: %v", err)
			continue
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scrape event rows: %w", err)
	}
	return events, nil
}
