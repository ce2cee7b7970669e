// backend/services/tracking_service.go
package services

import (
	"fmt"
	"log"
	"time"

	"github.com/adtrack/backend/config"
	"github.com/adtrack/backend/database"
	"github.com/adtrack/backend/models"
	"github.com/adtrack/backend/scraper"
)

// RegisterCompetitor adds a competitor by page name, idempotently.
func RegisterCompetitor(pageName string, pageID *string) (*models.Competitor, bool, error) {
	if pageName == "" {
		return nil, false, fmt.Errorf("competitor page name is required")
	}
	return database.AddCompetitor(pageName, pageID)
}

// EnsureConfiguredCompetitors seeds the registry with the configured
// competitor list. Safe to call before every pass; existing names are no-ops.
func EnsureConfiguredCompetitors() error {
	for _, name := range config.AppConfig.AdLibrary.Competitors {
		if _, _, err := database.AddCompetitor(name, nil); err != nil {
			return fmt.Errorf("failed to seed competitor %q: %w", name, err)
		}
	}
	return nil
}

// RunScrapePass executes one full acquisition pass: every registered
// competitor is scraped in sequence, candidates are upserted, and one audit
// record is logged per competitor. A scrape or store failure for one
// competitor aborts that competitor's batch only; committed upserts stand.
// The pass finishes by recomputing longevity so queries read fresh durations.
func RunScrapePass() error {
	log.Println("Service: Starting ad library scrape pass...")

	if err := EnsureConfiguredCompetitors(); err != nil {
		return err
	}

	competitors, err := database.GetCompetitors()
	if err != nil {
		return fmt.Errorf("failed to list competitors for scrape pass: %w", err)
	}

	passDelay := config.AppConfig.AdLibrary.PassDelay
	for i, competitor := range competitors {
		if err := scrapeCompetitor(competitor); err != nil {
			log.Printf("ERROR Service: Scrape for %q failed: %v\n", competitor.PageName, err)
		}
		if passDelay > 0 && i < len(competitors)-1 {
			time.Sleep(passDelay)
		}
	}

	recomputed, err := RecomputeDaysRunning(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to recompute longevity after pass: %w", err)
	}
	log.Printf("Service: Scrape pass complete. Longevity recomputed for %d ads.\n", recomputed)
	return nil
}

func scrapeCompetitor(competitor models.Competitor) error {
	candidates, err := scraper.FetchCompetitorAds(competitor.PageName, competitor.ID)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	now := time.Now().UTC()
	newCount := 0
	for _, candidate := range candidates {
		if err := candidate.Validate(); err != nil {
			// Malformed candidates are reported and dropped, never fatal to the batch.
			log.Printf("WARN Service: Rejecting candidate from %q: %v\n", competitor.PageName, err)
			continue
		}
		created, err := database.UpsertAd(candidate, now)
		if err != nil {
			// Store failure aborts this competitor's batch; earlier upserts are committed.
			return fmt.Errorf("upsert failed for ad %s: %w", candidate.AdID, err)
		}
		if created {
			newCount++
		}
	}

	if err := database.LogScrape(competitor.ID, len(candidates), newCount); err != nil {
		return fmt.Errorf("audit log failed: %w", err)
	}

	log.Printf("Service: %q pass done: %d ads observed, %d new.\n", competitor.PageName, len(candidates), newCount)
	return nil
}

// RecomputeDaysRunning sets days_running for every active ad from its
// first_seen and the given now. Idempotent and order-independent: only rows
// whose stored value differs are written, so a second call with the same now
// changes nothing.
func RecomputeDaysRunning(now time.Time) (int, error) {
	ads, err := database.GetActiveAds()
	if err != nil {
		return 0, fmt.Errorf("failed to load active ads for recompute: %w", err)
	}

	updated := 0
	for _, ad := range ads {
		days := models.DaysRunning(ad.FirstSeen, now)
		if days == ad.DaysRunning {
			continue
		}
		if err := database.UpdateAdDaysRunning(ad.ID, days); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// SweepInactiveAds marks ads not re-observed within the grace window as
// inactive. This is an explicit operator maintenance step; nothing in the
// pipeline triggers it implicitly.
func SweepInactiveAds(now time.Time, graceDays int) (int64, error) {
	if graceDays <= 0 {
		graceDays = config.AppConfig.Thresholds.StaleGraceDays
	}
	cutoff := now.AddDate(0, 0, -graceDays)
	return database.MarkAdsInactiveBefore(cutoff)
}
