package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"bootterm/internal/config"
	"bootterm/internal/script"
)

// Values mirrors the editable fields as strings, the way huh inputs bind them.
type Values struct {
	SpeedMs      string
	JitterMs     string
	StartDelayMs string
	Script       string
	WatchScript  bool
	LogLevel     string
}

// FromConfig fills form values from cfg.
func FromConfig(cfg config.Config) Values {
	return Values{
		SpeedMs:      strconv.Itoa(cfg.Typing.SpeedMs),
		JitterMs:     strconv.Itoa(cfg.Typing.JitterMs),
		StartDelayMs: strconv.Itoa(cfg.Typing.StartDelayMs),
		Script:       cfg.Script,
		WatchScript:  cfg.WatchScript,
		LogLevel:     cfg.Log.Level,
	}
}

// Apply writes v onto a copy of cfg.
func (v Values) Apply(cfg config.Config) (config.Config, error) {
	var err error
	if cfg.Typing.SpeedMs, err = parseMs(v.SpeedMs); err != nil {
		return cfg, fmt.Errorf("speed: %w", err)
	}
	if cfg.Typing.JitterMs, err = parseMs(v.JitterMs); err != nil {
		return cfg, fmt.Errorf("jitter: %w", err)
	}
	if cfg.Typing.StartDelayMs, err = parseMs(v.StartDelayMs); err != nil {
		return cfg, fmt.Errorf("start delay: %w", err)
	}
	cfg.Script = strings.TrimSpace(v.Script)
	cfg.WatchScript = v.WatchScript
	cfg.Log.Level = v.LogLevel
	return cfg, nil
}

func parseMs(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number of milliseconds", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("must be >= 0, got %d", n)
	}
	return n, nil
}

func validateMs(s string) error {
	_, err := parseMs(s)
	return err
}

// validateScript accepts an empty path (built-in boot) or a loadable script file.
func validateScript(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := script.Load(strings.TrimSpace(s))
	return err
}

// Run launches an interactive settings form for config.yaml and saves it on submit.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Defaults()
	}
	v := FromConfig(cfg)

	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(18).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(18).Foreground(green).Bold(true)
	theme.Blurred.SelectedOption = theme.Blurred.SelectedOption.Foreground(lipgloss.Color("243"))
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)
	theme.Focused.Base.BorderForeground(green)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("Velocidade de digitação e script do boot"),
			huh.NewInput().Title("Speed (ms)").Value(&v.SpeedMs).Validate(validateMs),
			huh.NewInput().Title("Jitter (ms)").Value(&v.JitterMs).Validate(validateMs),
			huh.NewInput().Title("Start delay (ms)").Value(&v.StartDelayMs).Validate(validateMs),
		),
		huh.NewGroup(
			huh.NewInput().Title("Script").Placeholder("vazio = boot embutido").Value(&v.Script).Validate(validateScript),
			huh.NewConfirm().Title("Watch script").Affirmative("sim").Negative("não").Value(&v.WatchScript),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&v.LogLevel),
		),
	).WithTheme(theme).WithWidth(60)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	next, err := v.Apply(cfg)
	if err != nil {
		return err
	}
	if err := config.Save(next); err != nil {
		return err
	}
	path, _ := config.Path()
	fmt.Printf("\n✓ config.yaml salvo: %s\n\n", path)
	return nil
}
