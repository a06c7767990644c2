package cli

import (
	"flag"
	"os"
	"path/filepath"
)

// Config holds runtime settings for the Sahayak CLI
type Config struct {
	// ServerURL is the API base, including the version prefix
	ServerURL string
	// ProfileDir holds the session and draft files
	ProfileDir string
}

// LoadDefaults populates c with sensible defaults
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000/api/v1"
	if dir, err := os.UserConfigDir(); err == nil {
		c.ProfileDir = filepath.Join(dir, "sahayak")
	} else {
		c.ProfileDir = ".sahayak"
	}
}

// LoadConfig constructs a Config from defaults, then the environment,
// then command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	if v := os.Getenv("SAHAYAK_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("SAHAYAK_PROFILE_DIR"); v != "" {
		cfg.ProfileDir = v
	}

	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "API base URL")
	flag.StringVar(&cfg.ProfileDir, "profile", cfg.ProfileDir, "profile directory for session and drafts")
	flag.Parse()

	return cfg
}
