package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	appver "bootterm/internal/version"
)

func (m model) View() string {
	if m.quitting {
		return "até logo.\n"
	}
	if m.wiping {
		return zone.Scan(m.wipeView())
	}
	return zone.Scan(m.viewScreen(m.screen))
}

func (m model) viewScreen(s screen) string {
	if s == screenHub {
		return m.hubView()
	}
	return m.heroView()
}

// wipeView closes a band over the screen being left, then opens it over the target.
func (m model) wipeView() string {
	w := m.width
	if w <= 0 {
		w = 80
	}
	from := screenHero
	if m.wipeTo == screenHero {
		from = screenHub
	}
	f := float64(m.wipeStep) / float64(maxInt(1, m.wipeSteps))
	if f < 0.5 {
		// markers in a cut frame would confuse zone positions
		return wipeLines(zone.Scan(m.viewScreen(from)), w, m.height, int(f*2*float64(w)))
	}
	return wipeLines(zone.Scan(m.viewScreen(m.wipeTo)), w, m.height, int((1-f)*2*float64(w)))
}

func (m model) heroView() string {
	w := m.contentWidth()
	full := m.width
	if full <= 0 {
		full = w
	}
	center := func(s string) string { return lipgloss.PlaceHorizontal(full, lipgloss.Center, s) }

	b := &strings.Builder{}
	b.WriteString(renderLogo(full))
	b.WriteString(center(MutedStyle().Render(m.profile.Tagline)))
	b.WriteString("\n\n")

	title := m.profile.Handle
	if title == "" {
		title = "boot"
	}
	termLines := strings.Split(m.term.View(), "\n")
	card := renderCard(w-2, withIcon(IconBoot(), title+": ~"), termLines, m.term.Height, true)
	b.WriteString(center(card))
	b.WriteString("\n\n")

	switch {
	case m.booting:
		count := fmt.Sprintf(" %d/%d", len(m.lines), m.bootScript.Len())
		b.WriteString(center(m.spin.View() + MutedStyle().Render(" iniciando ") + m.prog.View() + MutedStyle().Render(count)))
	case m.bootErr != nil:
		errStyle := lipgloss.NewStyle().Foreground(Vitesse.Red)
		b.WriteString(center(errStyle.Render("boot interrompido: "+m.bootErr.Error()) + "  " + zone.Mark("hero.enter", Button("[ enter ]"))))
	case m.booted:
		b.WriteString(center(zone.Mark("hero.enter", Button("[ enter ]"))))
	}
	b.WriteString("\n")
	if m.noticeActive() {
		b.WriteString(center(MutedStyle().Render(m.notice)))
	}
	b.WriteString("\n")
	b.WriteString(center(m.help.ShortHelpView(m.bindings())))
	return b.String()
}

func (m model) hubView() string {
	w := m.contentWidth()
	b := &strings.Builder{}

	// header: identity left, back button right
	left := AccentBold().Render(m.profile.Name)
	if m.profile.Handle != "" {
		left += MutedStyle().Render("  " + m.profile.Handle)
	}
	back := zone.Mark("hub.back", GhostButton("← voltar"))
	gap := maxInt(1, w-lipgloss.Width(left)-lipgloss.Width(back))
	b.WriteString(left + strings.Repeat(" ", gap) + back)
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	inner := w - 2
	if m.paletteOpen {
		// the palette replaces the top of the card
		pal := renderCommandPaletteTop(w, m.palette.View(), m.slashFiltered, m.slashIndex)
		b.WriteString(pal)
		b.WriteString("\n")
		rest := maxInt(1, m.hubInnerLines()-lipgloss.Height(pal))
		b.WriteString(renderCard(inner, m.tab.label(), m.tabLines(inner), rest, false))
	} else {
		b.WriteString(renderCard(inner, m.tab.label(), m.tabLines(inner), m.hubInnerLines(), false))
	}
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine(w))
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.bindings()))
	return b.String()
}

func (m model) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for t := tabKind(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, withIcon(t.icon(), t.label()))
		if t == m.tab {
			label = Button(label)
		} else {
			label = GhostButton(label)
		}
		parts = append(parts, zone.Mark(t.zoneID(), label))
	}
	return strings.Join(parts, " ")
}

func (m model) tabLines(inner int) []string {
	switch m.tab {
	case tabProjects:
		return m.projectLines(inner, m.hubInnerLines())
	case tabTools:
		return m.toolLines(inner)
	default:
		return strings.Split(m.panel.View(), "\n")
	}
}

func (m model) panelContent(width int) string {
	wrap := lipgloss.NewStyle().Width(maxInt(10, width-2))
	var b strings.Builder
	if m.profile.Tagline != "" {
		b.WriteString(AccentBold().Render(m.profile.Tagline))
		b.WriteString("\n\n")
	}
	b.WriteString(wrap.Render(strings.TrimSpace(m.profile.About)))
	b.WriteString("\n\n")
	b.WriteString(MutedStyle().Render(fmt.Sprintf("%d projetos · %d ferramentas", len(m.profile.Projects), len(m.profile.Tools))))
	return b.String()
}

// projectLines renders the visible cards and scrolls so the selected card stays in view.
func (m model) projectLines(inner, height int) []string {
	if len(m.visible) == 0 {
		q := strings.TrimSpace(m.filter.Value())
		if q == "" {
			return []string{MutedStyle().Render("nenhum projeto")}
		}
		return []string{MutedStyle().Render(fmt.Sprintf("nenhum projeto corresponde a %q", q))}
	}
	var out []string
	selStart, selEnd := 0, 0
	for vi, idx := range m.visible {
		p := m.profile.Projects[idx]
		selected := vi == m.projSel
		if selected {
			selStart = len(out)
		}
		marker := "  "
		if selected {
			marker = AccentBold().Render("▸ ")
		}
		label := GhostButton("Mostrar")
		if m.expanded[idx] {
			label = Button("Ocultar")
		}
		head := marker + lipgloss.NewStyle().Bold(true).Foreground(Vitesse.Text).Render(p.Title)
		if p.Summary != "" {
			head += MutedStyle().Render("  " + p.Summary)
		}
		head = clipToWidth(head, maxInt(1, inner-lipgloss.Width(label)-1))
		head += strings.Repeat(" ", maxInt(1, inner-lipgloss.Width(head)-lipgloss.Width(label))) + label
		out = append(out, zone.Mark(projectZone(idx), head))
		if len(p.Tags) > 0 {
			chips := make([]string, len(p.Tags))
			for i, t := range p.Tags {
				chips[i] = ChipStyle(Vitesse.Cyan).Render(t)
			}
			out = append(out, clipToWidth("  "+strings.Join(chips, " "), inner))
		}
		if m.expanded[idx] {
			body, ok := m.details[idx]
			if !ok {
				body = MutedStyle().Render("carregando…")
				if strings.TrimSpace(p.Details) == "" {
					body = MutedStyle().Render("sem detalhes")
				}
			}
			for _, ln := range strings.Split(body, "\n") {
				out = append(out, "    "+ln)
			}
		}
		if selected {
			selEnd = len(out)
		}
		out = append(out, "")
	}
	if len(out) <= height {
		return out
	}
	start := 0
	if selEnd > height {
		start = selEnd - height
	}
	if selStart < start {
		start = selStart
	}
	return out[start:minInt(len(out), start+height)]
}

func (m model) toolLines(inner int) []string {
	if len(m.profile.Tools) == 0 {
		return []string{MutedStyle().Render("nenhuma ferramenta")}
	}
	nameW := 0
	for _, t := range m.profile.Tools {
		nameW = maxInt(nameW, lipgloss.Width(t.Name))
	}
	nameW = minInt(nameW, 16)
	out := make([]string, 0, 2*len(m.profile.Tools))
	for i, t := range m.profile.Tools {
		marker := "  "
		if i == m.toolSel {
			marker = AccentBold().Render("▸ ")
		}
		name := AccentBold().Render(padRight(t.Name, nameW))
		line := marker + name + "  " + lipgloss.NewStyle().Foreground(Vitesse.Text).Render(t.Value)
		out = append(out, zone.Mark(toolZone(i), clipToWidth(line, inner)))
		if t.Desc != "" {
			out = append(out, strings.Repeat(" ", nameW+4)+MutedStyle().Render(t.Desc))
		}
	}
	return out
}

// renderStatusLine shows the filter input while filtering, a transient notice, or the clock and version.
func (m model) renderStatusLine(width int) string {
	if m.filtering {
		return m.filter.View()
	}
	left := m.clock().Format("15:04:05")
	if m.noticeActive() {
		left = m.notice
	} else if q := strings.TrimSpace(m.filter.Value()); q != "" {
		left = fmt.Sprintf("filtro: %s (%d)", q, len(m.visible))
	}
	return renderStatusBar(width, " "+left, "v"+appver.AppVersion+" ")
}

func (m model) clock() time.Time {
	if m.now.IsZero() {
		return time.Now()
	}
	return m.now
}

func (m model) noticeActive() bool {
	return m.notice != "" && m.clock().Before(m.noticeUntil)
}
