package app

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"bootterm/internal/config"
	"bootterm/internal/content"
	"bootterm/internal/script"
	"bootterm/internal/system"
	"bootterm/internal/ui"
)

// Start runs the TUI program and returns any error.
// The alt screen owns the terminal, so logs go to a rotating file.
func Start(ctx context.Context, cfg config.Config) error {
	closer := system.Configure(tuiLogOptions(cfg))
	defer func() { _ = closer.Close() }()

	s, err := script.Load(cfg.Script)
	if err != nil {
		return err
	}
	prof, err := content.Load(profilePath(cfg))
	if err != nil {
		system.Logger.Warn("profile", "err", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Initialize global bubblezone manager for mouse-aware zones.
	zone.NewGlobal()
	m, cleanup := ui.InitialModel(ctx, ui.Options{
		Script:     s,
		ScriptPath: cfg.Script,
		Play:       cfg.PlayOptions(),
		Profile:    prof,
		Cursor:     cfg.Theme.Cursor,
		Watch:      cfg.WatchScript,
	})
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
	cancel()
	cleanup()
	system.Logger.Debug("tui exited", "err", err)
	return err
}

func tuiLogOptions(cfg config.Config) system.LogOptions {
	opts := system.LogOptions{Level: cfg.Log.Level, File: cfg.Log.File, Quiet: true}
	if opts.File != "" {
		return opts
	}
	if p, err := config.LogPath(); err == nil {
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err == nil {
			opts.File = p
		}
	}
	return opts
}

func profilePath(cfg config.Config) string {
	if cfg.Profile != "" {
		return cfg.Profile
	}
	p, _ := config.ProfilePath()
	return p
}
