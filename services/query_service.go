// backend/services/query_service.go
package services

import (
	"fmt"
	"time"

	"github.com/adtrack/backend/config"
	"github.com/adtrack/backend/database"
	"github.com/adtrack/backend/models"
)

// GetVeteranAds returns long-running active ads, longest first. Non-positive
// arguments fall back to the configured defaults.
func GetVeteranAds(minDays, limit int) ([]models.Ad, error) {
	if minDays <= 0 {
		minDays = config.AppConfig.Thresholds.VeteranMinDays
	}
	if limit <= 0 {
		limit = config.AppConfig.Thresholds.VeteranLimit
	}
	return database.GetVeteranAds(minDays, limit)
}

// GetNewAds returns active ads first seen within the last daysAgo days,
// newest first.
func GetNewAds(daysAgo int) ([]models.Ad, error) {
	if daysAgo <= 0 {
		daysAgo = config.AppConfig.Thresholds.NewDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysAgo)
	return database.GetNewAds(cutoff)
}

// GetAllActiveAds returns every active ad with resolved page names.
func GetAllActiveAds() ([]models.Ad, error) {
	return database.GetAllActiveAds()
}

// GetStats aggregates dashboard counts over a single scan of the active set,
// so total/veteran/new are always consistent with the same filter definitions
// the list queries use.
func GetStats() (*models.StatsResponse, error) {
	ads, err := database.GetAllActiveAds()
	if err != nil {
		return nil, fmt.Errorf("failed to load active ads for stats: %w", err)
	}

	minDays := config.AppConfig.Thresholds.VeteranMinDays
	newCutoff := time.Now().UTC().AddDate(0, 0, -config.AppConfig.Thresholds.NewDays)

	stats := &models.StatsResponse{
		TotalAds:          len(ads),
		CategoryBreakdown: make(map[string]int),
		HookBreakdown:     make(map[string]int),
	}

	totalDays := 0
	for _, ad := range ads {
		totalDays += ad.DaysRunning
		if ad.DaysRunning >= minDays {
			stats.VeteranAds++
		}
		if !ad.FirstSeen.Before(newCutoff) {
			stats.NewAds++
		}

		category := "unknown"
		if ad.AiCategory != nil && *ad.AiCategory != "" {
			category = *ad.AiCategory
		}
		hook := "unknown"
		if ad.AiHook != nil && *ad.AiHook != "" {
			hook = *ad.AiHook
		}
		stats.CategoryBreakdown[category]++
		stats.HookBreakdown[hook]++
	}

	if len(ads) > 0 {
		stats.AvgDaysRunning = float64(totalDays) / float64(len(ads))
	}
	return stats, nil
}

// ListCompetitors returns the full competitor registry.
func ListCompetitors() ([]models.Competitor, error) {
	return database.GetCompetitors()
}

// GetRecentScrapeEvents returns the latest acquisition audit records.
func GetRecentScrapeEvents(limit int) ([]models.ScrapeEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	return database.GetRecentScrapeEvents(limit)
}
