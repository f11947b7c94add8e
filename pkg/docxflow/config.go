package docxflow

import (
	"errors"
	"os"
	"strings"
	"time"
)

// Config contains the options of an Editor
type Config struct {
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string
	// PatternTimeout bounds a single pattern match. 0 disables the bound.
	PatternTimeout time.Duration
	// WarnOnEmptySelection logs a warning when an action is applied to an
	// empty selection
	WarnOnEmptySelection bool
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LogLevel:             "info",
		PatternTimeout:       time.Second,
		WarnOnEmptySelection: true,
	}
}

// ConfigFromEnvironment creates a configuration from environment variables.
// The library never calls it itself; command line tools do.
func ConfigFromEnvironment() *Config {
	config := DefaultConfig()

	// DOCXFLOW_LOG_LEVEL
	if val := os.Getenv("DOCXFLOW_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// DOCXFLOW_PATTERN_TIMEOUT
	if val := os.Getenv("DOCXFLOW_PATTERN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			config.PatternTimeout = d
		}
	}

	// DOCXFLOW_WARN_EMPTY
	if val := os.Getenv("DOCXFLOW_WARN_EMPTY"); val != "" {
		config.WarnOnEmptySelection = parseBool(val)
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}

	if !validLogLevels[c.LogLevel] {
		return errors.New("invalid log level: " + c.LogLevel)
	}

	if c.PatternTimeout < 0 {
		return errors.New("pattern timeout cannot be negative")
	}

	return nil
}

// parseBool parses a boolean value from a string
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
