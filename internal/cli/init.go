// Package cli provides common initialization utilities shared by
// cmd/ispent and cmd/ispent-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/srishti24jais/ispent-expense-tracker/internal/config"
	applog "github.com/srishti24jais/ispent-expense-tracker/internal/log"
)

// SetupLogger initializes structured logging and installs it as the
// process default.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(applog.DefaultConfig()).WithComponent(component)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	return cfg
}
