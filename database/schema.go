// backend/database/schema.go
package database

import (
	"fmt"
	"log"
)

// Schema bootstrap runs at startup. AUTO_INCREMENT keys replace any
// count-derived identifiers so IDs stay monotonic under concurrent writers.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS competitors (
		id         INT AUTO_INCREMENT PRIMARY KEY,
		page_name  VARCHAR(255) NOT NULL,
		page_id    VARCHAR(64) NULL,
		added_at   DATETIME NOT NULL,
		UNIQUE KEY uq_competitors_page_name (page_name)
	)`,
	`CREATE TABLE IF NOT EXISTS ads (
		id            INT AUTO_INCREMENT PRIMARY KEY,
		ad_id         VARCHAR(255) NOT NULL,
		competitor_id INT NOT NULL,
		ad_type       VARCHAR(32) NOT NULL,
		headline      VARCHAR(512) NOT NULL DEFAULT '',
		body_text     TEXT,
		image_url     TEXT,
		video_url     TEXT,
		first_seen    DATETIME NOT NULL,
		last_seen     DATETIME NOT NULL,
		is_active     BOOLEAN NOT NULL DEFAULT TRUE,
		days_running  INT NOT NULL DEFAULT 0,
		ai_category   VARCHAR(64) NULL,
		ai_hook       VARCHAR(64) NULL,
		ai_source     VARCHAR(16) NULL,
		UNIQUE KEY uq_ads_ad_id (ad_id),
		KEY idx_ads_competitor (competitor_id),
		KEY idx_ads_active_days (is_active, days_running)
	)`,
	`CREATE TABLE IF NOT EXISTS scrape_events (
		id            INT AUTO_INCREMENT PRIMARY KEY,
		competitor_id INT NOT NULL,
		scrape_time   DATETIME NOT NULL,
		ads_found     INT NOT NULL,
		new_ads       INT NOT NULL,
		KEY idx_scrape_events_competitor (competitor_id)
	)`,
}

// InitSchema creates the three core tables if they do not exist yet.
func InitSchema() error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	for _, stmt := range schemaStatements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to run schema statement: %w", err)
		}
	}
	log.Println("Database: Schema verified (competitors, ads, scrape_events).")
	return nil
}
