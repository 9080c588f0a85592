package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const logoHeight = 6

// asciiLogoBlocks returns 6xN blocks for the CIEL letters.
func asciiLogoBlocks() [][]string {
	C := []string{
		"  #####  ",
		" ####### ",
		" ###     ",
		" ###     ",
		" ####### ",
		"  #####  ",
	}
	I := []string{
		" ####### ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
		"   ###   ",
		" ####### ",
	}
	E := []string{
		" ####### ",
		" ###     ",
		" #####   ",
		" ###     ",
		" ###     ",
		" ####### ",
	}
	L := []string{
		" ###     ",
		" ###     ",
		" ###     ",
		" ###     ",
		" ###     ",
		" ####### ",
	}
	return [][]string{C, I, E, L}
}

// composeLogoLines joins blocks horizontally; when solid=true, '#' cells become full blocks.
func composeLogoLines(blocks [][]string, solid bool) []string {
	sep := "  "
	out := make([]string, logoHeight)
	for row := 0; row < logoHeight; row++ {
		parts := make([]string, 0, len(blocks))
		for _, blk := range blocks {
			s := blk[row]
			if solid {
				s = strings.ReplaceAll(s, "#", "█")
			}
			parts = append(parts, s)
		}
		out[row] = strings.Join(parts, sep)
	}
	return out
}

// renderLogo centers the logo horizontally. Narrow terminals get a one-line title instead.
func renderLogo(width int) string {
	lines := composeLogoLines(asciiLogoBlocks(), true)
	if width <= 0 {
		width = 80
	}
	if xansi.StringWidth(lines[0]) > width {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, colorizeLine(0, "C I E L")) + "\n"
	}
	var b strings.Builder
	for i, ln := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, colorizeLine(i, ln)))
		b.WriteString("\n")
	}
	return b.String()
}

// colorizeLine fades the logo from the accent color on top to muted at the bottom.
func colorizeLine(row int, s string) string {
	shades := []lipgloss.Color{Vitesse.Primary, Vitesse.Primary, Vitesse.Cyan, Vitesse.Cyan, Vitesse.Blue, Vitesse.Blue}
	c := shades[row%len(shades)]
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(s)
}
