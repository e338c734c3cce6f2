package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Persist-failure policies for the sent-state tracker (see AppConfig.OnPersistFailure).
const (
	PersistFailureLog     = "log"
	PersistFailureSurface = "surface"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken     string
	DatabaseURL       string
	StorageBackend    string // "postgres" or "memory"
	TrainerTelegramID int64
	TrainerName       string
	LogLevel          string
	Environment       string
	CronSpecNudge     string // daily check that fires the month-end unsent-summary nudge
	OnPersistFailure  string // "log": keep the in-memory mark and log; "surface": return the error
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.StorageBackend = strings.ToLower(os.Getenv("STORAGE_BACKEND"))
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "postgres"
	}
	if cfg.StorageBackend != "postgres" && cfg.StorageBackend != "memory" {
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q (want postgres or memory)", cfg.StorageBackend)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" && cfg.StorageBackend == "postgres" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	trainerIDStr := os.Getenv("TRAINER_TELEGRAM_ID")
	if trainerIDStr == "" {
		return nil, fmt.Errorf("TRAINER_TELEGRAM_ID is not set")
	}
	cfg.TrainerTelegramID, err = strconv.ParseInt(trainerIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TRAINER_TELEGRAM_ID: %w", err)
	}

	cfg.TrainerName = os.Getenv("TRAINER_NAME")
	if cfg.TrainerName == "" {
		cfg.TrainerName = "Trainer"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecNudge = os.Getenv("CRON_SPEC_MONTH_END_NUDGE")
	if cfg.CronSpecNudge == "" {
		cfg.CronSpecNudge = "0 9 * * *" // Default: 9 AM daily, job itself checks for last day of month
	}

	cfg.OnPersistFailure = strings.ToLower(os.Getenv("ON_PERSIST_FAILURE"))
	if cfg.OnPersistFailure == "" {
		cfg.OnPersistFailure = PersistFailureLog
	}
	if cfg.OnPersistFailure != PersistFailureLog && cfg.OnPersistFailure != PersistFailureSurface {
		return nil, fmt.Errorf("invalid ON_PERSIST_FAILURE %q (want log or surface)", cfg.OnPersistFailure)
	}

	return cfg, nil
}
