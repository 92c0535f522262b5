package config

import (
	"fmt"
	"os"
)

// Defaults applied when the optional environment variables are unset.
const (
	DefaultDBPath             = "data/macromate.db"
	DefaultSpoonacularBaseURL = "https://api.spoonacular.com"
	DefaultUSDABaseURL        = "https://api.nal.usda.gov/fdc/v1"
)

// Config holds the configuration for the application.
type Config struct {
	SpoonacularAPIKey  string
	SpoonacularBaseURL string
	USDAAPIKey         string
	USDABaseURL        string
	DBPath             string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	spoonacularKey := os.Getenv("SPOONACULAR_API_KEY")
	if spoonacularKey == "" {
		return nil, fmt.Errorf("SPOONACULAR_API_KEY environment variable not set")
	}

	usdaKey := os.Getenv("USDA_API_KEY")
	if usdaKey == "" {
		return nil, fmt.Errorf("USDA_API_KEY environment variable not set")
	}

	spoonacularURL := os.Getenv("SPOONACULAR_BASE_URL")
	if spoonacularURL == "" {
		spoonacularURL = DefaultSpoonacularBaseURL
	}

	usdaURL := os.Getenv("USDA_BASE_URL")
	if usdaURL == "" {
		usdaURL = DefaultUSDABaseURL
	}

	dbPath := os.Getenv("MACROMATE_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBPath
	}

	return &Config{
		SpoonacularAPIKey:  spoonacularKey,
		SpoonacularBaseURL: spoonacularURL,
		USDAAPIKey:         usdaKey,
		USDABaseURL:        usdaURL,
		DBPath:             dbPath,
	}, nil
}
