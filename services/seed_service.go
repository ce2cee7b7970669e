// backend/services/seed_service.go
package services

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/adtrack/backend/database"
	"github.com/adtrack/backend/models"
	"github.com/adtrack/backend/scraper"
)

var demoHeadlines = []string{
	"Get 30% Off Your First Order",
	"The Most Comfortable Shoes You'll Ever Wear",
	"Transform Your Workout in 30 Days",
	"Limited Time: Free Shipping on All Orders",
	"Join 1 Million Happy Customers",
	"Why Athletes Choose Us",
	"Made for People Who Care About Quality",
	"Try Risk-Free for 100 Days",
}

var demoBodies = []string{
	"Discover why thousands of customers are making the switch. Premium quality, unbeatable comfort, and a 100-day money-back guarantee.",
	"Limited time offer: Get 30% off your first purchase. Plus free shipping on orders over $50. Don't miss out!",
	"Engineered for performance. Designed for style. Built to last. Experience the difference today.",
	"Real results from real customers. Join our community of over 1 million satisfied buyers.",
}

var demoAdTypes = []string{models.AdTypeVideo, models.AdTypeStatic, models.AdTypeCarousel}

var demoCategories = []string{"video", "static_image", "carousel", "ugc_style", "professional"}

var demoHooks = []string{"emotional", "urgency", "social_proof", "curiosity", "fear_of_missing_out", "logical"}

// SeedDemoData populates the store with competitors and ads of varying ages so
// the dashboard has something to show without a live scrape: roughly 30%
// veterans (30-90 days), 20% new (0-7 days), the rest mid-range. Ads are
// created through the same upsert path real passes use, with an aged first
// observation followed by a fresh re-observation.
func SeedDemoData() (int, error) {
	if err := EnsureConfiguredCompetitors(); err != nil {
		return 0, err
	}

	competitors, err := database.GetCompetitors()
	if err != nil {
		return 0, fmt.Errorf("failed to list competitors for seeding: %w", err)
	}

	now := time.Now().UTC()
	created := 0
	for _, competitor := range competitors {
		numAds := 5 + rand.Intn(6)
		for i := 0; i < numAds; i++ {
			headline := demoHeadlines[rand.Intn(len(demoHeadlines))]
			body := demoBodies[rand.Intn(len(demoBodies))]
			adType := demoAdTypes[rand.Intn(len(demoAdTypes))]

			candidate := models.AdCandidate{
				AdID:         scraper.StableAdID(competitor.ID, headline, fmt.Sprintf("%s#%d", body, i), ""),
				CompetitorID: competitor.ID,
				AdType:       adType,
				Headline:     headline,
				BodyText:     body,
				ImageURL:     "",
				VideoURL:     "",
			}

			firstSeen := now.AddDate(0, 0, -seedAgeDays())
			isNew, err := database.UpsertAd(candidate, firstSeen)
			if err != nil {
				return created, fmt.Errorf("failed to seed ad for %q: %w", competitor.PageName, err)
			}
			// Re-observe at now so last_seen is fresh while first_seen stays aged.
			if _, err := database.UpsertAd(candidate, now); err != nil {
				return created, fmt.Errorf("failed to refresh seeded ad for %q: %w", competitor.PageName, err)
			}
			if isNew {
				created++
			}

			category := demoCategories[rand.Intn(len(demoCategories))]
			if adType == models.AdTypeVideo {
				category = "video"
			}
			hook := demoHooks[rand.Intn(len(demoHooks))]
			if _, err := database.SetAiMetadata(candidate.AdID, category, hook, models.AiSourceOpenAI); err != nil {
				return created, fmt.Errorf("failed to seed metadata: %w", err)
			}
		}
	}

	recomputed, err := RecomputeDaysRunning(now)
	if err != nil {
		return created, err
	}
	log.Printf("Service: Seeded %d demo ads, recomputed longevity for %d.\n", created, recomputed)
	return created, nil
}

func seedAgeDays() int {
	switch r := rand.Float64(); {
	case r < 0.3:
		return 30 + rand.Intn(61) // veteran range
	case r < 0.5:
		return rand.Intn(8) // new range
	default:
		return 8 + rand.Intn(22)
	}
}
