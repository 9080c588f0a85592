package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderCommandPaletteTop draws the command palette: an input echo line and the filtered commands.
func renderCommandPaletteTop(width int, value string, cmds []SlashCmd, sel int) string {
	inner := width - 2
	if inner < 20 {
		inner = 20
	}
	nameWidth := 14
	border := BorderStyle()
	fill := lipgloss.NewStyle().Background(Vitesse.BgSoft)
	text := lipgloss.NewStyle().Foreground(Vitesse.Text)
	prompt := lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary).Render("›")
	hl := lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Primary).Render
	dim := MutedStyle().Render

	row := func(b *strings.Builder, line string) {
		if xansi.StringWidth(line) > inner {
			line = xansi.Truncate(line, inner, "")
		}
		b.WriteString(border.Render("│"))
		b.WriteString(fill.Width(inner).Render(line))
		b.WriteString(border.Render("│") + "\n")
	}

	var b strings.Builder
	b.WriteString(border.Render("╭"+strings.Repeat("─", inner)+"╮") + "\n")
	row(&b, fmt.Sprintf(" %s %s", prompt, text.Render(value)))

	maxItems := 8
	if len(cmds) > maxItems {
		cmds = cmds[:maxItems]
		if sel >= maxItems {
			sel = maxItems - 1
		}
	}
	if len(cmds) == 0 {
		row(&b, "  nenhum comando")
	}
	for i, c := range cmds {
		line := fmt.Sprintf("  %-*s  %s", nameWidth, c.Name, dim(c.Desc))
		if i == sel {
			line = hl(fmt.Sprintf("▸ %-*s  ", nameWidth, c.Name)) + dim(c.Desc)
		}
		row(&b, line)
	}
	b.WriteString(border.Render("╰"+strings.Repeat("─", inner)+"╯") + "\n")
	b.WriteString(dim("  ↑/↓ escolher · tab completar · enter executar · esc fechar"))
	return b.String()
}
