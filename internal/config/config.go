package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Sheets SheetsConfig
	Ponto  PontoConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// SheetsConfig holds the Apps Script web app endpoint configuration.
type SheetsConfig struct {
	BaseURL string
	Timeout time.Duration
}

// PontoConfig holds attendance classification tunables.
type PontoConfig struct {
	LateThresholdMinutes int
	ExpectedHeadcount    int
	RefreshInterval      time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Sheets endpoint configuration
	sheetsTimeout, err := time.ParseDuration(getEnv("SHEETS_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEETS_TIMEOUT: %w", err)
	}

	config.Sheets = SheetsConfig{
		BaseURL: getEnv("SHEETS_BASE_URL", ""),
		Timeout: sheetsTimeout,
	}

	// Attendance configuration
	lateThreshold, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES: %w", err)
	}

	expectedHeadcount, err := strconv.Atoi(getEnv("EXPECTED_HEADCOUNT", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPECTED_HEADCOUNT: %w", err)
	}

	refreshInterval, err := time.ParseDuration(getEnv("REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}

	config.Ponto = PontoConfig{
		LateThresholdMinutes: lateThreshold,
		ExpectedHeadcount:    expectedHeadcount,
		RefreshInterval:      refreshInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Sheets.BaseURL == "" {
		return fmt.Errorf("SHEETS_BASE_URL is required")
	}
	if c.Ponto.LateThresholdMinutes < 0 {
		return fmt.Errorf("LATE_THRESHOLD_MINUTES must not be negative")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
