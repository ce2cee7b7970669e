// backend/handlers/stats_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/adtrack/backend/models"
	"github.com/adtrack/backend/services"
)

// GetStatsHandler serves the aggregated dashboard numbers.
// GET /api/stats
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	stats, err := services.GetStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to compute stats: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// ScrapeEventsHandler serves the recent acquisition audit log, newest first.
// GET /api/scrape-events?limit=20
func ScrapeEventsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	limit := intQueryParam(r, "limit", 20)
	events, err := services.GetRecentScrapeEvents(limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list scrape events: %v", err))
		return
	}
	if events == nil {
		events = []models.ScrapeEvent{}
	}
	respondWithJSON(w, http.StatusOK, events)
}

// CompetitorsHandler lists the registry on GET and registers a new competitor
// on POST. Registration is idempotent per page name.
// GET|POST /api/competitors
func CompetitorsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		competitors, err := services.ListCompetitors()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list competitors: %v", err))
			return
		}
		if competitors == nil {
			competitors = []models.Competitor{}
		}
		respondWithJSON(w, http.StatusOK, competitors)

	case http.MethodPost:
		var req models.RegisterCompetitorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
		defer r.Body.Close()

		if strings.TrimSpace(req.PageName) == "" {
			respondWithError(w, http.StatusBadRequest, "Missing 'page_name' in request body")
			return
		}

		competitor, created, err := services.RegisterCompetitor(strings.TrimSpace(req.PageName), req.PageID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to register competitor: %v", err))
			return
		}
		code := http.StatusOK
		if created {
			code = http.StatusCreated
		}
		respondWithJSON(w, code, competitor)

	default:
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET and POST methods are allowed")
	}
}
