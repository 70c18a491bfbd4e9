// Package config provides configuration path management for the raptorboost CLI.
package config

import (
	"os"
	"path/filepath"
)

// Dir returns the raptorboost config directory.
// Uses XDG_CONFIG_HOME/raptorboost, defaulting to ~/.config/raptorboost.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "raptorboost"), nil
}
