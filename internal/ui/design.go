package ui

import (
	"github.com/charmbracelet/lipgloss"

	"bootterm/internal/typewriter"
)

// Design centralizes the TUI color palette and common styles.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	// Core brand/semantic colors
	Primary lipgloss.Color // #4d9375
	Blue    lipgloss.Color // #6394bf
	Yellow  lipgloss.Color // #e6cc77
	Magenta lipgloss.Color // #d9739f
	Cyan    lipgloss.Color // #5eaab5
	Red     lipgloss.Color // #cb7676

	// Text colors
	Text      lipgloss.Color // #dbd7ca
	Secondary lipgloss.Color // #bfbaaa
	Muted     lipgloss.Color // #858585

	// Surfaces
	Bg     lipgloss.Color // #181818
	BgSoft lipgloss.Color // #292929
	Border lipgloss.Color // #3a3a3a

	// Text on accent backgrounds (e.g., buttons/chips)
	OnAccent lipgloss.Color // #222

	// Status bar colors
	BarFG lipgloss.AdaptiveColor // light/dark
	BarBG lipgloss.AdaptiveColor // light/dark
}

// Vitesse defines the current global design theme for the TUI.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7ca"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#858585"),

	Bg:     lipgloss.Color("#181818"),
	BgSoft: lipgloss.Color("#292929"),
	Border: lipgloss.Color("#3a3a3a"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// TermStyles maps boot script classes to terminal styles.
func TermStyles() map[string]lipgloss.Style {
	return map[string]lipgloss.Style{
		"term-dim":    lipgloss.NewStyle().Foreground(Vitesse.Muted),
		"term-user":   lipgloss.NewStyle().Foreground(Vitesse.Blue).Bold(true),
		"term-host":   lipgloss.NewStyle().Foreground(Vitesse.Magenta).Bold(true),
		"term-prompt": lipgloss.NewStyle().Foreground(Vitesse.Primary),
		"term-cmd":    lipgloss.NewStyle().Foreground(Vitesse.Text),
		"term-ok":     lipgloss.NewStyle().Foreground(Vitesse.Primary).Bold(true),
		"term-warn":   lipgloss.NewStyle().Foreground(Vitesse.Yellow),
		"term-err":    lipgloss.NewStyle().Foreground(Vitesse.Red).Bold(true),
	}
}

// TermRenderer styles boot output with TermStyles. An empty glyph means the default block cursor.
func TermRenderer(cursor string) typewriter.ANSIRenderer {
	return typewriter.ANSIRenderer{
		Styles:      TermStyles(),
		Default:     lipgloss.NewStyle().Foreground(Vitesse.Text),
		CursorStyle: lipgloss.NewStyle().Foreground(Vitesse.Primary).Blink(true),
		CursorGlyph: cursor,
	}
}

// Convenience style helpers

// BorderStyle returns a style with the standard border color.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Border)
}

// AccentBold returns a bold style using the primary accent color.
func AccentBold() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary)
}

// MutedStyle is used for hints and secondary labels.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted)
}

// ChipStyle returns a style for colored nuggets (right/left segments).
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// Button renders a small accent button label with consistent styling.
func Button(s string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(Vitesse.OnAccent).Background(Vitesse.Primary).Padding(0, 1).Render(s)
}

// GhostButton is the unfocused counterpart of Button.
func GhostButton(s string) string {
	return lipgloss.NewStyle().Foreground(Vitesse.Secondary).Background(Vitesse.BgSoft).Padding(0, 1).Render(s)
}
