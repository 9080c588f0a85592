package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sahilm/fuzzy"

	"bootterm/internal/system"
	"bootterm/internal/typewriter"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmd := m.layout()
		return m, cmd
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case bootEventMsg:
		cmd := m.applyBootEvent(bootEvent(msg))
		return m, tea.Batch(cmd, waitBootEventCmd(m.sink))
	case bootDoneMsg:
		if msg.gen != m.bootGen {
			return m, nil
		}
		m.booting = false
		switch {
		case msg.err == nil:
			m.booted = true
		case errors.Is(msg.err, typewriter.ErrCancelled), errors.Is(msg.err, typewriter.ErrTargetUnavailable):
			// quitting
		default:
			system.Logger.Warn("boot playback", "err", msg.err)
			m.bootErr = msg.err
			m.booted = true
		}
		return m, nil
	case wipeTickMsg:
		if !m.wiping || msg.id != m.wipeID {
			return m, nil
		}
		m.wipeStep++
		if m.wipeStep < m.wipeSteps {
			return m, wipeTickCmd(m.wipeID)
		}
		m.wiping = false
		m.screen = m.wipeTo
		if m.screen == screenHero {
			cmd := m.replay()
			return m, cmd
		}
		return m, nil
	case scriptChangedMsg:
		return m, tea.Batch(reloadScriptCmd(m.scriptPath), watchScriptCmd(m.watcher))
	case scriptLoadedMsg:
		if msg.err != nil {
			system.Logger.Warn("reload script", "path", m.scriptPath, "err", msg.err)
			m.setNotice("script inválido: "+msg.err.Error(), 5*time.Second)
			return m, nil
		}
		m.bootScript = msg.script
		m.setNotice("script recarregado", 2*time.Second)
		if m.screen == screenHero && !m.wiping {
			cmd := m.replay()
			return m, cmd
		}
		return m, nil
	case detailsMsg:
		if msg.width == m.detailsWidth {
			m.details[msg.index] = msg.out
		}
		return m, nil
	case copiedMsg:
		if msg.err != nil {
			system.Logger.Warn("clipboard", "err", msg.err)
			m.setNotice("falha ao copiar: "+msg.err.Error(), 3*time.Second)
		} else {
			m.setNotice("copiado: "+msg.name, 2*time.Second)
		}
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	case spinner.TickMsg:
		if !m.booting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		nm, cmd := m.prog.Update(msg)
		if pm, ok := nm.(progress.Model); ok {
			m.prog = pm
		}
		return m, cmd
	}
	// cursor blink and other input internals
	if m.paletteOpen {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}
	if m.filtering {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}
	return m, nil
}

// layout sizes the viewports for the current window and re-renders
// expanded project details when the wrap width changed.
func (m *model) layout() tea.Cmd {
	w := m.contentWidth()
	m.term.Width = w - 2
	m.term.Height = maxInt(4, m.height-logoHeight-9)
	m.prog.Width = maxInt(10, minInt(40, w-24))
	m.panel.Width = w - 2
	m.panel.Height = m.hubInnerLines()
	m.panel.SetContent(m.panelContent(m.panel.Width))
	m.refreshTerm()

	dw := w - 6
	if dw == m.detailsWidth {
		return nil
	}
	m.detailsWidth = dw
	m.details = make(map[int]string)
	var cmds []tea.Cmd
	for idx, open := range m.expanded {
		if open {
			cmds = append(cmds, renderDetailsCmd(idx, m.profile.Projects[idx], dw))
		}
	}
	return tea.Batch(cmds...)
}

func (m model) contentWidth() int {
	w := m.width
	if w <= 0 {
		w = 80
	}
	return maxInt(20, minInt(w, 100))
}

func (m model) hubInnerLines() int {
	return maxInt(4, m.height-8)
}

func (m *model) applyBootEvent(ev bootEvent) tea.Cmd {
	var cmd tea.Cmd
	switch ev.kind {
	case evClear:
		m.lines = nil
		m.current = ""
	case evFrame:
		m.current = ev.text
	case evLine:
		m.lines = append(m.lines, ev.text)
	case evCommit:
		if ev.commit.Total > 0 {
			cmd = m.prog.SetPercent(float64(ev.commit.Index+1) / float64(ev.commit.Total))
		}
	}
	m.refreshTerm()
	return cmd
}

// refreshTerm shows the scrollback plus the in-progress line, pinned to the bottom.
func (m *model) refreshTerm() {
	all := make([]string, 0, len(m.lines)+1)
	all = append(all, m.lines...)
	all = append(all, m.current)
	m.term.SetContent(strings.Join(all, "\n"))
	m.term.GotoBottom()
}

func (m *model) startWipe(to screen) tea.Cmd {
	if m.wiping || m.screen == to {
		return nil
	}
	m.wiping = true
	m.wipeID++
	m.wipeTo = to
	m.wipeStep = 0
	d := wipeToHub
	if to == screenHero {
		d = wipeToHero
	}
	m.wipeSteps = maxInt(1, int(d/wipeFrame))
	if m.filtering {
		m.filtering = false
		m.filter.Blur()
	}
	if m.paletteOpen {
		m.closePalette()
	}
	return wipeTickCmd(m.wipeID)
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	// a second action during a wipe is ignored
	if m.wiping {
		return m, nil
	}
	if m.screen == screenHero {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Enter):
			if m.booted {
				cmd := m.startWipe(screenHub)
				return m, cmd
			}
		case key.Matches(msg, m.keys.Replay):
			cmd := m.replay()
			return m, cmd
		}
		return m, nil
	}
	if m.paletteOpen {
		return m.paletteKey(msg)
	}
	if m.filtering {
		return m.filterKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Palette):
		cmd := m.openPalette()
		return m, cmd
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Back):
		cmd := m.startWipe(screenHero)
		return m, cmd
	case key.Matches(msg, m.keys.Panel):
		m.tab = tabPanel
		return m, nil
	case key.Matches(msg, m.keys.Projects):
		m.tab = tabProjects
		return m, nil
	case key.Matches(msg, m.keys.Tools):
		m.tab = tabTools
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return m, nil
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return m, nil
	}
	switch m.tab {
	case tabPanel:
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return m, cmd
	case tabProjects:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.projSel > 0 {
				m.projSel--
			}
		case key.Matches(msg, m.keys.Down):
			if m.projSel < len(m.visible)-1 {
				m.projSel++
			}
		case key.Matches(msg, m.keys.Toggle):
			if m.projSel < len(m.visible) {
				cmd := m.toggleProject(m.visible[m.projSel])
				return m, cmd
			}
		case key.Matches(msg, m.keys.Filter):
			m.filtering = true
			cmd := m.filter.Focus()
			return m, cmd
		}
	case tabTools:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.toolSel > 0 {
				m.toolSel--
			}
		case key.Matches(msg, m.keys.Down):
			if m.toolSel < len(m.profile.Tools)-1 {
				m.toolSel++
			}
		case key.Matches(msg, m.keys.Copy), key.Matches(msg, m.keys.Enter):
			if m.toolSel < len(m.profile.Tools) {
				return m, copyCmd(m.profile.Tools[m.toolSel])
			}
		}
	}
	return m, nil
}

func (m model) filterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.SetValue("")
		m.filter.Blur()
		m.filtering = false
		m.applyFilter()
		return m, nil
	case tea.KeyEnter:
		m.filter.Blur()
		m.filtering = false
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter narrows visible projects by fuzzy match on title and tags, best first.
func (m *model) applyFilter() {
	q := strings.TrimSpace(m.filter.Value())
	if q == "" {
		m.visible = m.allProjects()
	} else {
		matches := fuzzy.Find(q, m.profile.ProjectTitles())
		m.visible = make([]int, 0, len(matches))
		for _, mt := range matches {
			m.visible = append(m.visible, mt.Index)
		}
	}
	if m.projSel >= len(m.visible) {
		m.projSel = maxInt(0, len(m.visible)-1)
	}
}

func (m *model) toggleProject(idx int) tea.Cmd {
	m.expanded[idx] = !m.expanded[idx]
	if !m.expanded[idx] {
		return nil
	}
	p := m.profile.Projects[idx]
	if _, ok := m.details[idx]; ok || strings.TrimSpace(p.Details) == "" {
		return nil
	}
	return renderDetailsCmd(idx, p, m.detailsWidth)
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.wiping || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.screen == screenHero {
		if m.booted && zone.Get("hero.enter").InBounds(msg) {
			cmd := m.startWipe(screenHub)
			return m, cmd
		}
		return m, nil
	}
	if zone.Get("hub.back").InBounds(msg) {
		cmd := m.startWipe(screenHero)
		return m, cmd
	}
	for t := tabKind(0); t < tabCount; t++ {
		if zone.Get(t.zoneID()).InBounds(msg) {
			m.tab = t
			return m, nil
		}
	}
	switch m.tab {
	case tabProjects:
		for vi, idx := range m.visible {
			if zone.Get(projectZone(idx)).InBounds(msg) {
				m.projSel = vi
				cmd := m.toggleProject(idx)
				return m, cmd
			}
		}
	case tabTools:
		for i, t := range m.profile.Tools {
			if zone.Get(toolZone(i)).InBounds(msg) {
				m.toolSel = i
				return m, copyCmd(t)
			}
		}
	}
	return m, nil
}

func projectZone(idx int) string { return fmt.Sprintf("hub.project.%d", idx) }
func toolZone(idx int) string    { return fmt.Sprintf("hub.tool.%d", idx) }
