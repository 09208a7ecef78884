// Package config provides configuration management for focusd.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Database: %s\n", cfg.Storage.DBPath)
package config

import (
	"time"
)

// Config represents the complete application configuration.
//
// Invariants:
// - Storage.DBPath must be non-empty
// - Scheduler.Timezone must resolve via time.LoadLocation
// - Analytics.RunInterval must be > 0
// - Display.DefaultMode must be a known formatter name.
type Config struct {
	// Storage settings
	Storage StorageConfig `yaml:"storage"`

	// Scheduler settings
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Analytics settings
	Analytics AnalyticsConfig `yaml:"analytics"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig contains storage-related settings.
type StorageConfig struct {
	// Path to BoltDB database file
	DBPath string `yaml:"db_path"`
}

// SchedulerConfig contains scheduling-related settings.
type SchedulerConfig struct {
	// IANA timezone name resolving "today" and week boundaries.
	// "Local" uses the system zone.
	Timezone string `yaml:"timezone"`
}

// AnalyticsConfig contains aggregation settings.
type AnalyticsConfig struct {
	// How often the daemon folds completed sessions
	RunInterval time.Duration `yaml:"run_interval"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Default display mode (table, json, simple)
	DefaultMode string `yaml:"default_mode"`

	// Enable colored output
	ColorEnabled bool `yaml:"color_enabled"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// Validate checks if the configuration satisfies all invariants.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return ErrNoDBPath
	}

	if _, err := c.Location(); err != nil {
		return ErrInvalidTimezone
	}

	if c.Analytics.RunInterval <= 0 {
		return ErrInvalidRunInterval
	}

	validModes := map[string]bool{
		"table":  true,
		"json":   true,
		"simple": true,
	}
	if !validModes[c.Display.DefaultMode] {
		return ErrInvalidDisplayMode
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	return nil
}

// Location resolves the scheduler timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Scheduler.Timezone == "" || c.Scheduler.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Scheduler.Timezone)
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Scheduler: SchedulerConfig{
			Timezone: "Local",
		},
		Analytics: AnalyticsConfig{
			RunInterval: time.Minute,
		},
		Display: DisplayConfig{
			DefaultMode:  "table",
			ColorEnabled: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}
