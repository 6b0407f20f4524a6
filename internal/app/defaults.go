package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the location of the defaults file,
// <UserConfigDir>/doby/config.toml. doby consumes no environment
// variables, so the path is derived from the OS convention only.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(dir, "doby", "config.toml"), nil
}
