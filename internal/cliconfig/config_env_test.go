package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all env vars",
			envVars: map[string]string{
				"DREAMTEAM_API_URL":      "http://env:8000",
				"DREAMTEAM_STATE_DIR":    "/env/state",
				"DREAMTEAM_STORAGE":      "memory",
				"DREAMTEAM_STORAGE_KEY":  "env",
				"DREAMTEAM_HTTP_TIMEOUT": "2s",
				"DREAMTEAM_LOG_LEVEL":    "error",
				"DREAMTEAM_NO_COLOR":     "1",
			},
			changed: map[string]bool{},
			expected: Config{
				APIURL:      "http://env:8000",
				StateDir:    "/env/state",
				Storage:     "memory",
				StorageKey:  "env",
				HTTPTimeout: 2 * time.Second,
				LogLevel:    "error",
				NoColor:     true,
			},
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"DREAMTEAM_API_URL":   "http://env:8000",
				"DREAMTEAM_STATE_DIR": "/env/state",
			},
			changed:  map[string]bool{"state-dir": true},
			initial:  Config{StateDir: "/flag/state"},
			expected: Config{APIURL: "http://env:8000", StateDir: "/flag/state"},
		},
		{
			name:    "returns error for invalid duration",
			envVars: map[string]string{"DREAMTEAM_HTTP_TIMEOUT": "not-a-duration"},
			changed: map[string]bool{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("DREAMTEAM_API_URL=http://dotenv:8000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DREAMTEAM_API_URL", "")
	os.Unsetenv("DREAMTEAM_API_URL")

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("DREAMTEAM_API_URL"); got != "http://dotenv:8000" {
		t.Errorf("DREAMTEAM_API_URL = %q, want value from .env", got)
	}
}

func TestLoadDotEnv_Missing(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v for missing file", err)
	}
}
