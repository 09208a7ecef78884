package config

import (
	"os"
	"path/filepath"
)

// defaultDBPath returns the default database file path.
//
// Returns: ~/.config/focusd/focusd.db.
func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./focusd.db"
	}

	return filepath.Join(homeDir, ".config", "focusd", "focusd.db")
}

// DefaultConfigPath returns the default configuration file path.
//
// Returns: ~/.config/focusd/config.yaml.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.yaml"
	}

	return filepath.Join(homeDir, ".config", "focusd", "config.yaml")
}
