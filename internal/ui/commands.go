package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"bootterm/internal/content"
	"bootterm/internal/script"
	"bootterm/internal/typewriter"
)

const (
	wipeFrame  = 40 * time.Millisecond
	wipeToHub  = 520 * time.Millisecond
	wipeToHero = 420 * time.Millisecond
)

// writeClipboard is swapped in tests.
var writeClipboard = clipboard.WriteAll

// Commands

// playBootCmd runs one boot playback on the command goroutine. Play clears the
// previous output itself; a ctx cancelled by a newer boot makes it a no-op.
func playBootCmd(ctx context.Context, eng *typewriter.Engine, s typewriter.Script, opts typewriter.PlayOptions, gen int) tea.Cmd {
	return func() tea.Msg {
		return bootDoneMsg{gen: gen, err: eng.Play(ctx, s, opts)}
	}
}

// waitBootEventCmd delivers the next sink event; it is re-armed after each one.
func waitBootEventCmd(s *chanSink) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-s.ch:
			return bootEventMsg(ev)
		case <-s.done:
			return nil
		}
	}
}

func wipeTickCmd(id int) tea.Cmd {
	return tea.Tick(wipeFrame, func(time.Time) tea.Msg { return wipeTickMsg{id: id} })
}

func watchScriptCmd(w *script.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-w.C(); !ok {
			return nil
		}
		return scriptChangedMsg{}
	}
}

func reloadScriptCmd(path string) tea.Cmd {
	return func() tea.Msg {
		s, err := script.Load(path)
		return scriptLoadedMsg{script: s, err: err}
	}
}

func renderDetailsCmd(index int, p content.Project, width int) tea.Cmd {
	return func() tea.Msg {
		return detailsMsg{index: index, width: width, out: renderMarkdown(p.Details, width)}
	}
}

func copyCmd(t content.Tool) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{name: t.Name, err: writeClipboard(t.Value)}
	}
}

// periodic tick command
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}
