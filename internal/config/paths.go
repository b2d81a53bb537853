package config

import (
	"os"
	"path/filepath"
)

// GetUserConfigDir returns ~/.nameswipe, or $NAMESWIPE_HOME when set.
func GetUserConfigDir() (string, error) {
	if dir := os.Getenv("NAMESWIPE_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".nameswipe"), nil
}

// EnsureConfigDir creates the user config directory.
func EnsureConfigDir(userConfigDir string) error {
	return os.MkdirAll(userConfigDir, 0755)
}

// DefaultPath is config.yaml inside the user config directory.
func DefaultPath() (string, error) {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
