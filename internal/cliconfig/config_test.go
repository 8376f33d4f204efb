package cliconfig

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %v, want %v", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("Storage = %v, want file", cfg.Storage)
	}
	if cfg.StorageKey != "root" {
		t.Errorf("StorageKey = %v, want root", cfg.StorageKey)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.StateDir = "/tmp/dreamteam"
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  string
		wantURL  string
		wantLvl  string
		wantsDir bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "trailing slash trimmed",
			mutate:  func(c *Config) { c.APIURL = "http://192.168.0.160:8000/" },
			wantURL: "http://192.168.0.160:8000",
		},
		{
			name:    "empty api url defaults",
			mutate:  func(c *Config) { c.APIURL = "" },
			wantURL: DefaultAPIURL,
		},
		{
			name:    "invalid api url",
			mutate:  func(c *Config) { c.APIURL = "not a url" },
			wantErr: "api-url",
		},
		{
			name:    "unknown storage",
			mutate:  func(c *Config) { c.Storage = "redis" },
			wantErr: "storage",
		},
		{
			name:    "empty storage key",
			mutate:  func(c *Config) { c.StorageKey = "" },
			wantErr: "storage-key",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.HTTPTimeout = 0 },
			wantErr: "timeout",
		},
		{
			name:    "log level lowercased",
			mutate:  func(c *Config) { c.LogLevel = "DEBUG" },
			wantLvl: "debug",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: "log-level",
		},
		{
			name:     "state dir derived",
			mutate:   func(c *Config) { c.StateDir = "" },
			wantsDir: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Validate() error = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			if tt.wantURL != "" && cfg.APIURL != tt.wantURL {
				t.Errorf("APIURL = %v, want %v", cfg.APIURL, tt.wantURL)
			}
			if tt.wantLvl != "" && cfg.LogLevel != tt.wantLvl {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.wantLvl)
			}
			if tt.wantsDir && cfg.StateDir != DefaultStateDir() {
				t.Errorf("StateDir = %v, want %v", cfg.StateDir, DefaultStateDir())
			}
		})
	}
}

func TestConfig_Validate_MemoryStorageNeedsNoStateDir(t *testing.T) {
	t.Setenv("HOME", "")
	cfg := DefaultConfig()
	cfg.Storage = StorageMemory

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
