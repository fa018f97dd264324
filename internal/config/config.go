package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/itunescache/itunescache/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port           string
	DBPath         string
	ITunesURL      string
	DefaultCountry string
	CachePolicy    string
	FrontendURL    string
	LogLevel       string
	LogFormat      string
	OTelEndpoint   string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", constants.DefaultPort),
		DBPath:         getEnv("DB_PATH", constants.DefaultDBPath),
		ITunesURL:      getEnv("ITUNES_URL", constants.DefaultITunesURL),
		DefaultCountry: getEnv("DEFAULT_COUNTRY", constants.DefaultCountry),
		CachePolicy:    getEnv("CACHE_POLICY", constants.DefaultCachePolicy),
		FrontendURL:    getEnv("FRONTEND_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		OTelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	// Validate ITunesURL
	if c.ITunesURL == "" {
		errors = append(errors, "ITUNES_URL cannot be empty")
	} else if u, err := url.ParseRequestURI(c.ITunesURL); err != nil || u.Host == "" {
		errors = append(errors, fmt.Sprintf("ITUNES_URL is not a valid URL: %s", c.ITunesURL))
	}

	validPolicies := map[string]bool{
		constants.CachePolicyFirstWriteWins: true,
		constants.CachePolicyAlwaysRefresh:  true,
	}
	if !validPolicies[c.CachePolicy] {
		errors = append(errors, fmt.Sprintf("CACHE_POLICY must be one of: %s, %s, got: %s",
			constants.CachePolicyFirstWriteWins, constants.CachePolicyAlwaysRefresh, c.CachePolicy))
	}

	if c.FrontendURL != "" {
		if u, err := url.ParseRequestURI(c.FrontendURL); err != nil || u.Host == "" {
			errors = append(errors, fmt.Sprintf("FRONTEND_URL is not a valid URL: %s", c.FrontendURL))
		}
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
