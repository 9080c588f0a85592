package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

type SlashCmd struct {
	Name    string
	Aliases []string
	Desc    string
}

var slashCmds = []SlashCmd{
	{Name: "/painel", Desc: "ir para o painel"},
	{Name: "/projetos", Desc: "ir para os projetos"},
	{Name: "/ferramentas", Aliases: []string{"/tools"}, Desc: "ir para as ferramentas"},
	{Name: "/filtrar", Aliases: []string{"/find"}, Desc: "filtrar projetos: /filtrar <termo>"},
	{Name: "/copiar", Aliases: []string{"/copy"}, Desc: "copiar ferramenta: /copiar <nome>"},
	{Name: "/reiniciar", Aliases: []string{"/replay", "/boot"}, Desc: "voltar e reiniciar o boot"},
	{Name: "/sair", Aliases: []string{"/quit", "/exit"}, Desc: "encerrar"},
}

func (m *model) openPalette() tea.Cmd {
	m.paletteOpen = true
	m.palette.SetValue("/")
	m.palette.CursorEnd()
	m.refreshSlash()
	return m.palette.Focus()
}

func (m *model) closePalette() {
	m.paletteOpen = false
	m.palette.SetValue("")
	m.palette.Blur()
	m.slashFiltered = nil
	m.slashIndex = 0
}

func (m *model) refreshSlash() {
	q := strings.TrimSpace(m.palette.Value())
	// only the first token filters
	if sp := strings.IndexAny(q, " \t"); sp >= 0 {
		q = q[:sp]
	}
	m.slashFiltered = filterSlashCommands(q)
	if m.slashIndex >= len(m.slashFiltered) {
		m.slashIndex = 0
	}
}

// filterSlashCommands matches by name or alias prefix, then falls back to fuzzy on names.
func filterSlashCommands(prefix string) []SlashCmd {
	if prefix == "" || prefix == "/" {
		return slashCmds
	}
	p := strings.ToLower(prefix)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	res := make([]SlashCmd, 0, len(slashCmds))
	for _, c := range slashCmds {
		if strings.HasPrefix(c.Name, p) {
			res = append(res, c)
			continue
		}
		for _, a := range c.Aliases {
			if strings.HasPrefix(a, p) {
				res = append(res, c)
				break
			}
		}
	}
	if len(res) > 0 {
		return res
	}
	names := make([]string, len(slashCmds))
	for i, c := range slashCmds {
		names[i] = c.Name
	}
	for _, mt := range fuzzy.Find(strings.TrimPrefix(p, "/"), names) {
		res = append(res, slashCmds[mt.Index])
	}
	return res
}

func (m model) paletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePalette()
		return m, nil
	case tea.KeyUp:
		if m.slashIndex > 0 {
			m.slashIndex--
		}
		return m, nil
	case tea.KeyDown:
		if m.slashIndex < len(m.slashFiltered)-1 {
			m.slashIndex++
		}
		return m, nil
	case tea.KeyTab:
		if m.slashIndex < len(m.slashFiltered) {
			m.palette.SetValue(m.slashFiltered[m.slashIndex].Name + " ")
			m.palette.CursorEnd()
			m.refreshSlash()
		}
		return m, nil
	case tea.KeyEnter:
		line := strings.TrimSpace(m.palette.Value())
		parts := strings.Fields(line)
		// a partial name runs the highlighted command
		if len(parts) > 0 && canonicalSlash(parts[0]) == "" && m.slashIndex < len(m.slashFiltered) {
			parts[0] = m.slashFiltered[m.slashIndex].Name
		}
		m.closePalette()
		if len(parts) == 0 {
			return m, nil
		}
		return m.execSlashCmd(parts[0], strings.Join(parts[1:], " "))
	}
	var cmd tea.Cmd
	m.palette, cmd = m.palette.Update(msg)
	m.refreshSlash()
	return m, cmd
}

// execSlashCmd runs a palette command by name with optional args.
func (m model) execSlashCmd(name, args string) (tea.Model, tea.Cmd) {
	switch canonicalSlash(name) {
	case "/painel":
		m.tab = tabPanel
	case "/projetos":
		m.tab = tabProjects
	case "/ferramentas":
		m.tab = tabTools
	case "/filtrar":
		m.tab = tabProjects
		m.filter.SetValue(args)
		m.applyFilter()
		if args == "" {
			m.filtering = true
			cmd := m.filter.Focus()
			return m, cmd
		}
	case "/copiar":
		if len(m.profile.Tools) == 0 {
			m.setNotice("nenhuma ferramenta", 2*time.Second)
			return m, nil
		}
		idx := m.toolSel
		if args != "" {
			idx = m.findTool(args)
			if idx < 0 {
				m.setNotice(fmt.Sprintf("ferramenta %q não encontrada", args), 2*time.Second)
				return m, nil
			}
		}
		m.tab = tabTools
		m.toolSel = idx
		return m, copyCmd(m.profile.Tools[idx])
	case "/reiniciar":
		cmd := m.startWipe(screenHero)
		return m, cmd
	case "/sair":
		return m.quit()
	default:
		m.setNotice(fmt.Sprintf("comando desconhecido: %s", name), 2*time.Second)
	}
	return m, nil
}

// findTool returns the best fuzzy match for q among tool names, or -1.
func (m model) findTool(q string) int {
	names := make([]string, len(m.profile.Tools))
	for i, t := range m.profile.Tools {
		names[i] = t.Name
	}
	matches := fuzzy.Find(q, names)
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Index
}

// canonicalSlash resolves aliases; unknown names give "".
func canonicalSlash(name string) string {
	n := strings.ToLower(name)
	for _, c := range slashCmds {
		if c.Name == n {
			return c.Name
		}
		for _, a := range c.Aliases {
			if a == n {
				return c.Name
			}
		}
	}
	return ""
}
