package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// Static credential pair, configured out-of-band.
	AuthUsername     string
	AuthPasswordHash string // bcrypt

	SessionSecret   string
	SessionDuration time.Duration
}

// LoadConfig loads configuration from environment variables and a .env file
// if present. Environment variables override .env values.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("AUTH_USERNAME", "")
	viper.SetDefault("AUTH_PASSWORD_HASH", "")
	viper.SetDefault("SESSION_SECRET", "")
	viper.SetDefault("SESSION_DURATION", "12h")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		AuthUsername:     viper.GetString("AUTH_USERNAME"),
		AuthPasswordHash: viper.GetString("AUTH_PASSWORD_HASH"),
		SessionSecret:    viper.GetString("SESSION_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.AuthUsername == "" || cfg.AuthPasswordHash == "" {
		return nil, fmt.Errorf("AUTH_USERNAME and AUTH_PASSWORD_HASH must be set")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "insecure-dev-session-secret-change-me"
		log.Println("Warning: SESSION_SECRET not set. Using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}

	sessionDurationStr := viper.GetString("SESSION_DURATION")
	sessionDuration, err := time.ParseDuration(sessionDurationStr)
	if err != nil {
		sessionDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for SESSION_DURATION (%q). Defaulting to %s.\n", sessionDurationStr, sessionDuration)
	}
	cfg.SessionDuration = sessionDuration

	return cfg, nil
}
