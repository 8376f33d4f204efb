package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultAPIURL is the base URL of the stats service the roster is read from.
const DefaultAPIURL = "http://localhost:8000"

// Storage backends.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds CLI configuration for dreamteam.
type Config struct {
	APIURL      string        `validate:"required,url"`
	StateDir    string        `validate:"required_unless=Storage memory"`
	Storage     string        `validate:"oneof=file sqlite memory"`
	StorageKey  string        `validate:"required"`
	HTTPTimeout time.Duration `validate:"gt=0"`
	LogLevel    string        `validate:"oneof=debug info warn error"`
	NoColor     bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		APIURL:      DefaultAPIURL,
		StateDir:    "", // Derived from the home directory during Validate
		Storage:     StorageFile,
		StorageKey:  "root",
		HTTPTimeout: 15 * time.Second,
		LogLevel:    "warn",
	}
}

// DefaultStateDir returns ~/.dreamteam, or "" if the home directory is unknown.
func DefaultStateDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".dreamteam")
	}
	return ""
}

var validate = validator.New()

// Validate sets derived defaults and checks the configuration.
func (c *Config) Validate() error {
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir()
	}
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	c.LogLevel = strings.ToLower(c.LogLevel)

	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	messages := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		messages = append(messages, fmt.Sprintf("%s failed %s check (value: %q)", flagName(e.Field()), e.Tag(), fmt.Sprint(e.Value())))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}

// flagName maps a Config field to the flag users set it with.
func flagName(field string) string {
	switch field {
	case "APIURL":
		return "api-url"
	case "StateDir":
		return "state-dir"
	case "Storage":
		return "storage"
	case "StorageKey":
		return "storage-key"
	case "HTTPTimeout":
		return "timeout"
	case "LogLevel":
		return "log-level"
	default:
		return field
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
