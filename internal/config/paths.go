package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the bootterm config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/bootterm; on macOS
// to ~/Library/Application Support/bootterm; and on Windows to %AppData%/bootterm.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			base = home
		} else {
			return "", errors.New("cannot determine config directory")
		}
	}
	return filepath.Join(base, "bootterm"), nil
}

// Path returns the config.yaml location.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath is the default log file used while the TUI owns the terminal.
func LogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bootterm.log"), nil
}

// ProfilePath is where a user profile override is looked up when none is configured.
func ProfilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "profile.yaml"), nil
}
