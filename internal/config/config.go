package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bootterm/internal/typewriter"
)

// Config is the user configuration persisted as config.yaml.
// Environment variables override it at load time and are never saved.
type Config struct {
	Typing      TypingConfig `yaml:"typing"`
	Script      string       `yaml:"script,omitempty"`
	Profile     string       `yaml:"profile,omitempty"`
	WatchScript bool         `yaml:"watch_script"`
	Theme       ThemeConfig  `yaml:"theme"`
	Log         LogConfig    `yaml:"log"`
}

type TypingConfig struct {
	SpeedMs      int `yaml:"speed_ms"`
	JitterMs     int `yaml:"jitter_ms"`
	StartDelayMs int `yaml:"start_delay_ms"`
}

type ThemeConfig struct {
	// Cursor is the glyph drawn at the typing position in the terminal renderer.
	Cursor string `yaml:"cursor"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Env var names used as overrides.
const (
	EnvSpeedMs  = "BOOTTERM_SPEED_MS"
	EnvJitterMs = "BOOTTERM_JITTER_MS"
	EnvScript   = "BOOTTERM_SCRIPT"
	EnvLogLevel = "BOOTTERM_LOG_LEVEL"
	EnvLogFile  = "BOOTTERM_LOG_FILE"
)

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Typing: TypingConfig{SpeedMs: 10, JitterMs: 0, StartDelayMs: 220},
		Theme:  ThemeConfig{Cursor: "█"},
		Log:    LogConfig{Level: "info"},
	}
}

// PlayOptions converts the typing section into engine options.
func (c Config) PlayOptions() typewriter.PlayOptions {
	return typewriter.PlayOptions{
		BaseDelay:  time.Duration(c.Typing.SpeedMs) * time.Millisecond,
		Jitter:     time.Duration(c.Typing.JitterMs) * time.Millisecond,
		StartDelay: time.Duration(c.Typing.StartDelayMs) * time.Millisecond,
	}
}

// Validate rejects negative timings.
func (c Config) Validate() error {
	switch {
	case c.Typing.SpeedMs < 0:
		return fmt.Errorf("typing.speed_ms must be >= 0, got %d", c.Typing.SpeedMs)
	case c.Typing.JitterMs < 0:
		return fmt.Errorf("typing.jitter_ms must be >= 0, got %d", c.Typing.JitterMs)
	case c.Typing.StartDelayMs < 0:
		return fmt.Errorf("typing.start_delay_ms must be >= 0, got %d", c.Typing.StartDelayMs)
	}
	return nil
}

// Load reads config.yaml from the config dir. See LoadFile.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile applies defaults, merges the file at path when present and then
// applies env overrides. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// unmarshal onto defaults so absent keys keep their default values
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			cfg = Defaults()
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case !os.IsNotExist(err):
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	applyEnvOverrides(&cfg)
	if strings.TrimSpace(cfg.Theme.Cursor) == "" {
		cfg.Theme.Cursor = Defaults().Theme.Cursor
	}
	return cfg, cfg.Validate()
}

// Save writes cfg to the config dir.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := envInt(EnvSpeedMs); ok {
		cfg.Typing.SpeedMs = v
	}
	if v, ok := envInt(EnvJitterMs); ok {
		cfg.Typing.JitterMs = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScript)); v != "" {
		cfg.Script = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Log.File = v
	}
}

// envInt ignores unparsable values.
func envInt(key string) (int, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
