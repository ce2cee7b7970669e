// backend/handlers/admin_handler.go
package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/adtrack/backend/services"
)

// TriggerScrapeHandler kicks off a full acquisition pass in the background.
// POST /api/admin/scrape/
func TriggerScrapeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	go func() {
		if err := services.RunScrapePass(); err != nil {
			log.Printf("ERROR Handler: Scrape pass failed: %v\n", err)
		}
	}()

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Scrape pass initiated in background.",
	})
}

// TriggerAnalysisHandler kicks off an enrichment pass in the background.
// POST /api/admin/analyze/
func TriggerAnalysisHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	go func() {
		analyzed, err := services.AnalyzeAllAds(context.Background())
		if err != nil {
			log.Printf("ERROR Handler: Analysis pass failed after %d ads: %v\n", analyzed, err)
			return
		}
		log.Printf("Handler: Analysis pass completed, %d ads enriched (background task).\n", analyzed)
	}()

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "AI analysis pass initiated in background.",
	})
}

// RecomputeLongevityHandler recomputes days_running for all active ads, synchronously.
// POST /api/admin/recompute/
func RecomputeLongevityHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	updated, err := services.RecomputeDaysRunning(time.Now().UTC())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to recompute longevity: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

// SweepInactiveHandler marks ads not seen within the grace window as inactive.
// POST /api/admin/sweep-inactive/?days=14
func SweepInactiveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	graceDays := intQueryParam(r, "days", 0)
	swept, err := services.SweepInactiveAds(time.Now().UTC(), graceDays)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to sweep inactive ads: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int64{"deactivated": swept})
}

// ResetFallbackHandler clears fallback-classified metadata so the next
// analysis pass retries those ads against the external classifier.
// POST /api/admin/reset-fallback/
func ResetFallbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	cleared, err := services.ResetFallbackClassifications()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to reset fallback metadata: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int64{"cleared": cleared})
}

// SeedDemoHandler loads demo competitors and ads for dashboard evaluation.
// POST /api/admin/seed-demo/
func SeedDemoHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	created, err := services.SeedDemoData()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to seed demo data: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"adsCreated": created})
}
