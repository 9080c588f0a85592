package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bootterm/internal/testutil"
)

var envKeys = []string{EnvSpeedMs, EnvJitterMs, EnvScript, EnvLogLevel, EnvLogFile}

func TestDir_UsesXDGConfigHome(t *testing.T) {
	home := testutil.TempConfigHome(t)
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir error: %v", err)
	}
	if want := filepath.Join(home, "bootterm"); dir != want {
		t.Fatalf("Dir = %q, want %q", dir, want)
	}
}

func TestLoadFile_MissingGivesDefaults(t *testing.T) {
	testutil.ClearEnv(t, envKeys...)
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	opts := cfg.PlayOptions()
	if opts.BaseDelay != 10*time.Millisecond || opts.Jitter != 0 || opts.StartDelay != 220*time.Millisecond {
		t.Fatalf("unexpected default timings: %+v", opts)
	}
	if cfg.Theme.Cursor == "" || cfg.Log.Level != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	testutil.ClearEnv(t, envKeys...)
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "typing:\n  speed_ms: 25\nwatch_script: true\nlog:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Typing.SpeedMs != 25 || cfg.Typing.StartDelayMs != 220 {
		t.Fatalf("typing not merged: %+v", cfg.Typing)
	}
	if !cfg.WatchScript || cfg.Log.Level != "debug" {
		t.Fatalf("fields not merged: %+v", cfg)
	}
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("typing:\n  speed_ms: 25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(testutil.WithEnv(t, EnvSpeedMs, "3"))
	t.Cleanup(testutil.WithEnv(t, EnvJitterMs, "oops"))
	t.Cleanup(testutil.WithEnv(t, EnvScript, "/tmp/boot.yaml"))
	t.Cleanup(testutil.WithEnv(t, EnvLogLevel, "warn"))
	t.Cleanup(testutil.WithEnv(t, EnvLogFile, "/tmp/bootterm.log"))
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Typing.SpeedMs != 3 || cfg.Typing.JitterMs != 0 {
		t.Fatalf("env speed/jitter not applied: %+v", cfg.Typing)
	}
	if cfg.Script != "/tmp/boot.yaml" || cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/bootterm.log" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadFile_RejectsNegative(t *testing.T) {
	testutil.ClearEnv(t, envKeys...)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("typing:\n  jitter_ms: -4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	testutil.TempConfigHome(t)
	testutil.ClearEnv(t, envKeys...)
	cfg := Defaults()
	cfg.Typing.JitterMs = 4
	cfg.Script = "boot.json"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Typing.JitterMs != 4 || got.Script != "boot.json" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
