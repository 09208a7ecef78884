package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoDBPath is returned when no database path is configured.
	ErrNoDBPath = errors.New("no database path specified")

	// ErrInvalidTimezone is returned when the timezone cannot be resolved.
	ErrInvalidTimezone = errors.New("invalid timezone: must be an IANA zone name or Local")

	// ErrInvalidRunInterval is returned when the aggregation interval is <= 0.
	ErrInvalidRunInterval = errors.New("invalid run interval: must be > 0")

	// ErrInvalidDisplayMode is returned when display mode is not recognized.
	ErrInvalidDisplayMode = errors.New("invalid display mode: must be table, json, or simple")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrConfigNotFound is returned when config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
