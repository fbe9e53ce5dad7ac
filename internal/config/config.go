package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Hygieia CLI.
//
// Fields:
//   - BaseURL: root of the backend REST API, including the /api prefix.
//   - DataDir: directory for the local database and device key.
//   - OnlineCheckInterval: how often the client probes server reachability.
//
// Units: OnlineCheckInterval is a time.Duration (e.g., 3*time.Second).
type Config struct {
	BaseURL             string
	DataDir             string
	OnlineCheckInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:5000/api"
	c.DataDir = defaultDataDir()
	c.OnlineCheckInterval = 3 * time.Second
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hygieia"
	}
	return filepath.Join(home, ".hygieia")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
