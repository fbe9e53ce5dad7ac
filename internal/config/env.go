package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognized by parseEnv.
const (
	envBaseURL       = "HYGIEIA_BASE_URL"
	envDataDir       = "HYGIEIA_DATA_DIR"
	envCheckInterval = "HYGIEIA_ONLINE_CHECK_INTERVAL"
)

// parseEnv overlays Config with values from the process environment. A
// .env file in the working directory is loaded first if one exists; real
// environment variables win over the file.
//
// Recognized variables:
//
//	HYGIEIA_BASE_URL                backend API root
//	HYGIEIA_DATA_DIR                local data directory
//	HYGIEIA_ONLINE_CHECK_INTERVAL   duration string, e.g. "3s"
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(envBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(envDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(envCheckInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.OnlineCheckInterval = d
		}
	}
}
