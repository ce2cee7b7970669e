// backend/services/analysis_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/adtrack/backend/analyzer"
	"github.com/adtrack/backend/database"
	"github.com/adtrack/backend/models"
)

// Classifier is the external classification capability, wired up in main.
// Package-level so tests can swap in a fake.
var Classifier analyzer.AdClassifier

// AnalysisDelay is the enforced minimum delay between external classifier
// calls. A rate-limit throttle, not a correctness requirement.
var AnalysisDelay = time.Second

// ClassifyTimeout bounds each external call so one stalled classification
// cannot block the remainder of a pass.
var ClassifyTimeout = 60 * time.Second

// AnalyzeAllAds runs one enrichment pass: every active ad with unset AI
// metadata is classified, one at a time with the inter-call delay. Any
// classifier failure degrades to the deterministic fallback, so every pending
// ad ends the pass with both fields set. Ads already enriched are never sent
// to the classifier again, keeping external calls at-most-once per ad.
// Only a store failure aborts the pass.
func AnalyzeAllAds(ctx context.Context) (int, error) {
	if Classifier == nil {
		return 0, fmt.Errorf("ad classifier is not configured")
	}

	ads, err := database.GetAdsNeedingAnalysis()
	if err != nil {
		return 0, fmt.Errorf("failed to load ads needing analysis: %w", err)
	}
	if len(ads) == 0 {
		log.Println("Service: No ads need analysis.")
		return 0, nil
	}
	log.Printf("Service: Starting AI analysis of %d ads...\n", len(ads))

	analyzed := 0
	for i, ad := range ads {
		result, source := classifyWithFallback(ctx, ad)

		updated, err := database.SetAiMetadata(ad.AdID, result.Category, result.Hook, source)
		if err != nil {
			return analyzed, fmt.Errorf("failed to persist metadata for ad %s: %w", ad.AdID, err)
		}
		if !updated {
			log.Printf("WARN Service: Ad %s disappeared before metadata could be saved.\n", ad.AdID)
			continue
		}
		analyzed++
		log.Printf("Service: Ad %s -> category=%s hook=%s (%s)\n", ad.AdID, result.Category, result.Hook, source)

		if AnalysisDelay > 0 && i < len(ads)-1 {
			time.Sleep(AnalysisDelay)
		}
	}

	log.Printf("Service: AI analysis complete. %d ads enriched.\n", analyzed)
	return analyzed, nil
}

// classifyWithFallback is the terminal error boundary for enrichment: it
// always returns a usable classification and its provenance.
func classifyWithFallback(ctx context.Context, ad models.Ad) (analyzer.Classification, string) {
	callCtx, cancel := context.WithTimeout(ctx, ClassifyTimeout)
	defer cancel()

	result, err := Classifier.ClassifyAd(callCtx, ad)
	if err != nil {
		log.Printf("WARN Service: Classification failed for ad %s, using fallback: %v\n", ad.AdID, err)
		return analyzer.FallbackClassification(ad), models.AiSourceFallback
	}
	return *result, models.AiSourceOpenAI
}

// ResetFallbackClassifications clears metadata written by the fallback so the
// next enrichment pass retries those ads against the real classifier. Explicit
// operator action; never runs automatically.
func ResetFallbackClassifications() (int64, error) {
	cleared, err := database.ResetFallbackMetadata()
	if err != nil {
		return 0, err
	}
	log.Printf("Service: Cleared fallback metadata on %d ads.\n", cleared)
	return cleared, nil
}
