// Package config loads application settings from environment variables
// (populated from the .env file in main).
package config

import (
	"errors"
	"os"
)

// Config holds the credentials and connection settings for one run.
type Config struct {
	ClientID     string
	ClientSecret string
	DatabaseURL  string
}

// Load reads the configuration from the environment. Each missing value is
// reported explicitly so a half-configured deployment fails loudly.
func Load() (*Config, error) {
	clientID := os.Getenv("CLIENT_ID")
	if clientID == "" {
		return nil, errors.New("CLIENT_ID environment variable not set")
	}

	clientSecret := os.Getenv("CLIENT_SECRET")
	if clientSecret == "" {
		return nil, errors.New("CLIENT_SECRET environment variable not set")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable not set")
	}

	return &Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		DatabaseURL:  databaseURL,
	}, nil
}
