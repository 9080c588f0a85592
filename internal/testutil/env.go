package testutil

import (
	"os"
	"testing"
)

// WithEnv sets env var to val for the duration of the test scope.
// An empty val unsets the variable. Returns a cleanup func to restore the previous value.
func WithEnv(t *testing.T, key, val string) func() {
	t.Helper()
	old, had := os.LookupEnv(key)
	if val == "" {
		_ = os.Unsetenv(key)
	} else {
		_ = os.Setenv(key, val)
	}
	return func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	}
}

// TempConfigHome points the user config base at a fresh temp dir so config
// reads and writes never touch the real home. Restored on test cleanup.
func TempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Cleanup(WithEnv(t, "XDG_CONFIG_HOME", dir))
	t.Cleanup(WithEnv(t, "HOME", dir))
	return dir
}

// ClearEnv unsets every key for the test scope.
func ClearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Cleanup(WithEnv(t, k, ""))
	}
}
