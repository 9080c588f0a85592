package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bootterm/internal/content"
	"bootterm/internal/script"
	"bootterm/internal/system"
	"bootterm/internal/typewriter"
)

type screen int

const (
	screenHero screen = iota
	screenHub
)

type tabKind int

const (
	tabPanel tabKind = iota
	tabProjects
	tabTools
	tabCount
)

func (t tabKind) label() string {
	switch t {
	case tabProjects:
		return "projetos"
	case tabTools:
		return "ferramentas"
	default:
		return "painel"
	}
}

func (t tabKind) zoneID() string {
	return "hub.tab." + t.label()
}

// Options configures the TUI session.
type Options struct {
	Script     typewriter.Script
	ScriptPath string
	Play       typewriter.PlayOptions
	Profile    content.Profile
	Cursor     string
	// Watch replays the boot when ScriptPath changes on disk.
	Watch bool
}

// Model for TUI
type model struct {
	ctx    context.Context
	engine *typewriter.Engine
	sink   *chanSink

	bootScript typewriter.Script
	scriptPath string
	playOpts   typewriter.PlayOptions
	watcher    *script.Watcher
	profile    content.Profile

	width  int
	height int
	screen screen
	now    time.Time

	// boot terminal
	lines   []string
	current string
	booting bool
	booted  bool
	bootGen int
	bootErr error
	spin    spinner.Model
	prog    progress.Model
	term    viewport.Model

	// bootCtx belongs to bootGen; starting a newer boot cancels it
	bootCtx    context.Context
	bootCancel context.CancelFunc

	// wipe transition
	wiping    bool
	wipeID    int
	wipeTo    screen
	wipeStep  int
	wipeSteps int

	// hub
	tab          tabKind
	panel        viewport.Model
	projSel      int
	expanded     map[int]bool
	details      map[int]string
	detailsWidth int
	filter       textinput.Model
	filtering    bool
	visible      []int
	toolSel      int

	// command palette
	palette       textinput.Model
	paletteOpen   bool
	slashFiltered []SlashCmd
	slashIndex    int

	// transient hint
	notice      string
	noticeUntil time.Time

	keys     keyMap
	help     help.Model
	quitting bool
}

// InitialModel builds the TUI model. The returned func releases the render
// target and watcher; call it after the program exits.
func InitialModel(ctx context.Context, opts Options) (tea.Model, func()) {
	m := newModel(ctx, opts)
	if opts.Watch && opts.ScriptPath != "" {
		w, err := script.NewWatcher(opts.ScriptPath, 150*time.Millisecond)
		if err != nil {
			system.Logger.Warn("watch script", "path", opts.ScriptPath, "err", err)
		} else {
			m.watcher = w
		}
	}
	cleanup := func() {
		m.sink.Close()
		if m.watcher != nil {
			_ = m.watcher.Close()
		}
	}
	return m, cleanup
}

func newModel(ctx context.Context, opts Options) model {
	if ctx == nil {
		ctx = context.Background()
	}
	sink := newChanSink(256)
	eng := typewriter.New(sink, typewriter.WithRenderer(TermRenderer(opts.Cursor)))
	eng.OnLineCommitted(sink.notifyCommit)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(Vitesse.Primary)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filtrar projetos"
	ti.CharLimit = 64
	ti.Blur()

	pi := textinput.New()
	pi.Prompt = ""
	pi.CharLimit = 80
	pi.Blur()

	m := model{
		ctx:          ctx,
		engine:       eng,
		sink:         sink,
		bootScript:   opts.Script,
		scriptPath:   opts.ScriptPath,
		playOpts:     opts.Play,
		profile:      opts.Profile,
		screen:       screenHero,
		booting:      true,
		spin:         sp,
		prog:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40), progress.WithoutPercentage()),
		term:         viewport.New(80, 12),
		panel:        viewport.New(80, 12),
		expanded:     make(map[int]bool),
		details:      make(map[int]string),
		detailsWidth: 74,
		filter:       ti,
		palette:      pi,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	m.bootCtx, m.bootCancel = context.WithCancel(ctx)
	m.visible = m.allProjects()
	m.panel.SetContent(m.panelContent(80))
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		waitBootEventCmd(m.sink),
		playBootCmd(m.bootCtx, m.engine, m.bootScript, m.playOpts, m.bootGen),
		m.spin.Tick,
		watchScriptCmd(m.watcher),
		tickCmd(),
	)
}

// startBoot cancels the running boot and returns the playback for a new one.
// A cancelled boot never starts typing, so commands may run in any order.
func (m *model) startBoot() tea.Cmd {
	m.bootCancel()
	m.bootCtx, m.bootCancel = context.WithCancel(m.ctx)
	m.bootGen++
	m.booting = true
	m.booted = false
	m.bootErr = nil
	return playBootCmd(m.bootCtx, m.engine, m.bootScript, m.playOpts, m.bootGen)
}

// replay restarts the boot from a clean terminal.
func (m *model) replay() tea.Cmd {
	play := m.startBoot()
	return tea.Batch(play, m.prog.SetPercent(0), m.spin.Tick)
}

func (m *model) setNotice(s string, d time.Duration) {
	m.notice = s
	m.noticeUntil = m.clock().Add(d)
}

func (m model) allProjects() []int {
	out := make([]int, len(m.profile.Projects))
	for i := range out {
		out[i] = i
	}
	return out
}
