// backend/main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/adtrack/backend/analyzer"
	"github.com/adtrack/backend/config"
	"github.com/adtrack/backend/database"
	"github.com/adtrack/backend/handlers"
	"github.com/adtrack/backend/services"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting Ad Longevity Tracker backend...")

	// .env is optional; env vars may come from the shell or the deploy target.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment as-is.")
	}

	configPath := os.Getenv("ADTRACK_CONFIG")
	if configPath == "" {
		configPath = "config/config.yaml"
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "backend/config/config.yaml"
			if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
				log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
			}
		}
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, DB name: %s",
		config.AppConfig.Server.Port, config.AppConfig.Database.DBName)
	if config.AppConfig.OpenAI.APIKey == "" {
		log.Println("WARN: OPENAI_API_KEY not set; analysis passes will classify every ad via the local fallback.")
	}

	if err := database.InitDB(config.AppConfig.Database); err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	defer database.CloseDB()

	if err := database.InitSchema(); err != nil {
		log.Fatalf("Error initializing schema: %v", err)
	}

	services.Classifier = analyzer.NewClientFromConfig()
	services.AnalysisDelay = config.AppConfig.Analysis.CallDelay
	services.ClassifyTimeout = config.AppConfig.OpenAI.RequestTimeout

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.DB.Ping(); err != nil {
			http.Error(w, `{"status": "error", "message": "database connection error"}`, http.StatusInternalServerError)
			log.Printf("Health check failed: DB ping error: %v", err)
			return
		}
		fmt.Fprintln(w, `{"status": "ok", "message": "ad tracker backend is healthy"}`)
	})

	http.HandleFunc("/api/stats", handlers.GetStatsHandler)
	http.HandleFunc("/api/ads/veterans", handlers.GetVeteranAdsHandler)
	http.HandleFunc("/api/ads/new", handlers.GetNewAdsHandler)
	http.HandleFunc("/api/ads/all", handlers.GetAllAdsHandler)
	http.HandleFunc("/api/competitors", handlers.CompetitorsHandler)
	http.HandleFunc("/api/scrape-events", handlers.ScrapeEventsHandler)
	http.HandleFunc("/api/report/winners", handlers.DownloadWinnersReportHandler)

	// Admin routes: batch maintenance triggered by the operator, never implicit.
	http.HandleFunc("/api/admin/scrape/", handlers.TriggerScrapeHandler)
	http.HandleFunc("/api/admin/analyze/", handlers.TriggerAnalysisHandler)
	http.HandleFunc("/api/admin/recompute/", handlers.RecomputeLongevityHandler)
	http.HandleFunc("/api/admin/sweep-inactive/", handlers.SweepInactiveHandler)
	http.HandleFunc("/api/admin/reset-fallback/", handlers.ResetFallbackHandler)
	http.HandleFunc("/api/admin/seed-demo/", handlers.SeedDemoHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
