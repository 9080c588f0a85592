package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// renderCard draws a rounded box whose top border carries title.
// Content lines are clipped to inner and the body is padded to innerLines when > 0.
func renderCard(inner int, title string, lines []string, innerLines int, focused bool) string {
	if inner < 4 {
		inner = 4
	}
	color := Vitesse.Border
	if focused {
		color = Vitesse.Primary
	}
	top := renderTopBorderWithTitle(inner, title, color)
	clipped := make([]string, 0, len(lines))
	for _, ln := range lines {
		clipped = append(clipped, clipToWidth(ln, inner))
	}
	if innerLines > 0 {
		for len(clipped) < innerLines {
			clipped = append(clipped, "")
		}
		if len(clipped) > innerLines {
			clipped = clipped[:innerLines]
		}
	}
	body := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		BorderTop(false).BorderLeft(true).BorderRight(true).BorderBottom(true).
		Width(inner).
		Render(strings.Join(clipped, "\n"))
	return top + "\n" + body
}

// renderTopBorderWithTitle composes the top border line with the title embedded.
func renderTopBorderWithTitle(inner int, title string, color lipgloss.Color) string {
	if inner < 1 {
		inner = 1
	}
	border := lipgloss.NewStyle().Foreground(color)
	t := strings.TrimSpace(title)
	if t == "" {
		return border.Render("╭" + strings.Repeat("─", inner) + "╮")
	}
	tStyled := AccentBold().Render(t)
	tW := xansi.StringWidth(tStyled)
	// at least one dash before the title
	leftFill := 1
	maxTitleW := maxInt(0, inner-leftFill-2)
	if tW > maxTitleW {
		tStyled = clipToWidth(tStyled, maxTitleW)
		tW = xansi.StringWidth(tStyled)
	}
	rightFill := maxInt(1, inner-leftFill-tW-2)
	left := border.Render("╭")
	pre := border.Render(strings.Repeat("─", leftFill) + " ")
	post := border.Render(" " + strings.Repeat("─", rightFill) + "╮")
	return left + pre + tStyled + post
}

// clipToWidth trims a string to the given display width (ANSI-safe).
func clipToWidth(s string, maxW int) string {
	if maxW <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= maxW {
		return s
	}
	return xansi.Truncate(s, maxW, "…")
}

// renderStatusBar draws a single-line status bar with left/right-aligned content.
func renderStatusBar(width int, left, right string) string {
	w := width
	if w <= 0 {
		w = 80
	}
	rw := xansi.StringWidth(right)
	if xansi.StringWidth(left)+rw+1 > w {
		left = clipToWidth(left, maxInt(0, w-rw-1))
	}
	pad := maxInt(0, w-xansi.StringWidth(left)-rw)
	return StatusBarBase().Render(left + strings.Repeat(" ", pad) + right)
}

// wipeLines covers the leftmost cols cells of every line with the wipe fill.
// The frame is padded to height so the band spans the whole screen.
func wipeLines(frame string, width, height, cols int) string {
	lines := strings.Split(strings.TrimSuffix(frame, "\n"), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if cols > width {
		cols = width
	}
	fill := lipgloss.NewStyle().Foreground(Vitesse.Primary).Render(strings.Repeat("█", cols))
	edge := ""
	if cols > 0 && cols < width {
		edge = lipgloss.NewStyle().Foreground(Vitesse.Cyan).Render("▌")
		cols++
	}
	for i, ln := range lines {
		rest := xansi.TruncateLeft(ln, cols, "")
		lines[i] = fill + edge + rest
	}
	return strings.Join(lines, "\n")
}

// padRight pads plain text to w cells; used for aligned labels in lists.
func padRight(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
