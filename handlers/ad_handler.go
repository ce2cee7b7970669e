// backend/handlers/ad_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/adtrack/backend/models"
	"github.com/adtrack/backend/reports"
	"github.com/adtrack/backend/services"
)

// GetVeteranAdsHandler serves long-running ads.
// GET /api/ads/veterans?minDays=30&limit=10
func GetVeteranAdsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	minDays := intQueryParam(r, "minDays", 0)
	limit := intQueryParam(r, "limit", 0)

	ads, err := services.GetVeteranAds(minDays, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get veteran ads: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, nonNilAds(ads))
}

// GetNewAdsHandler serves recently first-seen ads.
// GET /api/ads/new?days=7
func GetNewAdsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	days := intQueryParam(r, "days", 0)

	ads, err := services.GetNewAds(days)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get new ads: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, nonNilAds(ads))
}

// GetAllAdsHandler serves every active ad.
// GET /api/ads/all
func GetAllAdsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	ads, err := services.GetAllActiveAds()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to get ads: %v", err))
		return
	}
	respondWithJSON(w, http.StatusOK, nonNilAds(ads))
}

// DownloadWinnersReportHandler streams the veteran ads as a CSV download.
// GET /api/report/winners
func DownloadWinnersReportHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	minDays := intQueryParam(r, "minDays", 0)
	limit := intQueryParam(r, "limit", 0)

	ads, err := services.GetVeteranAds(minDays, limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to build winners report: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="winners-report.csv"`)
	if err := reports.WriteWinnersCSV(w, ads); err != nil {
		// Headers are already sent; all we can do is log via the error helper path.
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to write winners report: %v", err))
	}
}

func intQueryParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func nonNilAds(ads []models.Ad) []models.Ad {
	if ads == nil {
		return []models.Ad{}
	}
	return ads
}
