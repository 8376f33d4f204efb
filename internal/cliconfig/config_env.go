package cliconfig

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a .env file from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if FileExists(p) {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnvConfig applies configuration from environment variables (DREAMTEAM_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("api-url", os.Getenv("DREAMTEAM_API_URL"), &cfg.APIURL)
	s.setString("state-dir", os.Getenv("DREAMTEAM_STATE_DIR"), &cfg.StateDir)
	s.setString("storage", os.Getenv("DREAMTEAM_STORAGE"), &cfg.Storage)
	s.setString("storage-key", os.Getenv("DREAMTEAM_STORAGE_KEY"), &cfg.StorageKey)
	s.setString("log-level", os.Getenv("DREAMTEAM_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", os.Getenv("DREAMTEAM_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}

	s.setBoolFromString("no-color", os.Getenv("DREAMTEAM_NO_COLOR"), &cfg.NoColor)
	return nil
}
