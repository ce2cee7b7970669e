// backend/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// AdLibraryConfig drives the acquisition pass against the public ad library.
// Selectors live in config because the page markup changes without notice.
type AdLibraryConfig struct {
	SearchURLBase     string   `yaml:"search_url_base"`
	UserAgent         string   `yaml:"user_agent"`
	Competitors       []string `yaml:"competitors"` // seeded into the registry at pass start
	MaxAdsPerPass     int      `yaml:"max_ads_per_pass"`
	RequestTimeoutStr string   `yaml:"request_timeout"`
	PassDelayStr      string   `yaml:"pass_delay"` // politeness delay between competitors

	CardSelector     string `yaml:"card_selector"`
	HeadlineSelector string `yaml:"headline_selector"`
	BodySelector     string `yaml:"body_selector"`
	ImageSelector    string `yaml:"image_selector"`
	VideoSelector    string `yaml:"video_selector"`

	RequestTimeout time.Duration `yaml:"-"`
	PassDelay      time.Duration `yaml:"-"`
}

// OpenAIConfig targets any OpenAI-compatible chat completions endpoint.
// The API key is never read from YAML; it comes from OPENAI_API_KEY.
type OpenAIConfig struct {
	BaseURL           string  `yaml:"base_url"`
	Model             string  `yaml:"model"`
	VisionModel       string  `yaml:"vision_model"`
	MaxTokens         int     `yaml:"max_tokens"`
	Temperature       float32 `yaml:"temperature"`
	RequestTimeoutStr string  `yaml:"request_timeout"`

	APIKey         string        `yaml:"-"`
	RequestTimeout time.Duration `yaml:"-"`
}

type AnalysisConfig struct {
	CallDelayStr string `yaml:"call_delay"` // minimum delay between classifier calls

	CallDelay time.Duration `yaml:"-"`
}

type ThresholdsConfig struct {
	VeteranMinDays int `yaml:"veteran_min_days"`
	VeteranLimit   int `yaml:"veteran_limit"`
	NewDays        int `yaml:"new_days"`
	StaleGraceDays int `yaml:"stale_grace_days"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	AdLibrary  AdLibraryConfig  `yaml:"ad_library"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

var AppConfig Config

// LoadConfig reads the YAML config file and applies env overrides and defaults.
func LoadConfig(configPath string) error {
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Secrets come from the environment, not the YAML file.
	AppConfig.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	if pw := os.Getenv("ADTRACK_DB_PASSWORD"); pw != "" {
		AppConfig.Database.Password = pw
	}

	if AppConfig.AdLibrary.RequestTimeout, err = parseDurationOr(AppConfig.AdLibrary.RequestTimeoutStr, 30*time.Second); err != nil {
		return fmt.Errorf("failed to parse ad_library.request_timeout: %w", err)
	}
	if AppConfig.AdLibrary.PassDelay, err = parseDurationOr(AppConfig.AdLibrary.PassDelayStr, 2*time.Second); err != nil {
		return fmt.Errorf("failed to parse ad_library.pass_delay: %w", err)
	}
	if AppConfig.OpenAI.RequestTimeout, err = parseDurationOr(AppConfig.OpenAI.RequestTimeoutStr, 60*time.Second); err != nil {
		return fmt.Errorf("failed to parse openai.request_timeout: %w", err)
	}
	if AppConfig.Analysis.CallDelay, err = parseDurationOr(AppConfig.Analysis.CallDelayStr, time.Second); err != nil {
		return fmt.Errorf("failed to parse analysis.call_delay: %w", err)
	}

	if AppConfig.AdLibrary.MaxAdsPerPass <= 0 {
		AppConfig.AdLibrary.MaxAdsPerPass = 20
	}
	if AppConfig.Thresholds.VeteranMinDays <= 0 {
		AppConfig.Thresholds.VeteranMinDays = 30
	}
	if AppConfig.Thresholds.VeteranLimit <= 0 {
		AppConfig.Thresholds.VeteranLimit = 10
	}
	if AppConfig.Thresholds.NewDays <= 0 {
		AppConfig.Thresholds.NewDays = 7
	}
	if AppConfig.Thresholds.StaleGraceDays <= 0 {
		AppConfig.Thresholds.StaleGraceDays = 14
	}

	return nil
}

func parseDurationOr(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}
