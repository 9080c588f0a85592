package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"bootterm/internal/content"
	"bootterm/internal/script"
	"bootterm/internal/typewriter"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func testScript() typewriter.Script {
	return typewriter.Script{Lines: []typewriter.Line{
		{Segments: []typewriter.Segment{typewriter.Seg("$ ", "term-prompt"), typewriter.Seg("ls", "term-cmd")}},
		{Segments: []typewriter.Segment{typewriter.Seg("[OK] ", "term-ok"), typewriter.Seg("pronto.", "term-dim")}},
	}}
}

func testModel() model {
	m := newModel(context.Background(), Options{
		Script:  testScript(),
		Play:    typewriter.PlayOptions{},
		Profile: content.Default(),
	})
	nm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return nm.(model)
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	nm, cmd := m.Update(msg)
	out, ok := nm.(model)
	if !ok {
		t.Fatalf("Update returned %T", nm)
	}
	return out, cmd
}

func keyRunes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func finishBoot(t *testing.T, m model) model {
	t.Helper()
	m, _ = update(t, m, bootDoneMsg{gen: m.bootGen})
	if !m.booted {
		t.Fatalf("boot should be complete")
	}
	return m
}

func runWipe(t *testing.T, m model) model {
	t.Helper()
	if !m.wiping {
		t.Fatalf("expected a wipe in progress")
	}
	for i := 0; i < m.wipeSteps; i++ {
		m, _ = update(t, m, wipeTickMsg{id: m.wipeID})
	}
	if m.wiping {
		t.Fatalf("wipe did not finish after %d ticks", m.wipeSteps)
	}
	return m
}

func TestChanSink_OrderAndClose(t *testing.T) {
	s := newChanSink(4)
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceCurrent("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendLine("a"); err != nil {
		t.Fatal(err)
	}
	want := []bootEventKind{evClear, evFrame, evLine}
	for i, k := range want {
		if ev := <-s.ch; ev.kind != k {
			t.Fatalf("event %d kind = %v, want %v", i, ev.kind, k)
		}
	}
	s.Close()
	s.Close()
	if err := s.ReplaceCurrent("b"); !errors.Is(err, typewriter.ErrTargetUnavailable) {
		t.Fatalf("expected ErrTargetUnavailable after close, got %v", err)
	}
	if msg := waitBootEventCmd(s)(); msg != nil {
		t.Fatalf("expected nil msg after close, got %#v", msg)
	}
}

func TestChanSink_ClosedWhileBlockedUnblocksEngine(t *testing.T) {
	s := newChanSink(0)
	eng := typewriter.New(s, typewriter.WithRenderer(typewriter.PlainRenderer{}))
	done := make(chan error, 1)
	go func() { done <- eng.Play(context.Background(), testScript(), typewriter.PlayOptions{}) }()
	<-s.ch // first Clear delivered; the next send blocks
	s.Close()
	select {
	case err := <-done:
		if !errors.Is(err, typewriter.ErrTargetUnavailable) {
			t.Fatalf("expected ErrTargetUnavailable, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("engine still blocked after sink close")
	}
}

func TestModel_BootEventsBuildTerminal(t *testing.T) {
	m := testModel()
	s := newChanSink(512)
	eng := typewriter.New(s, typewriter.WithRenderer(typewriter.PlainRenderer{}))
	eng.OnLineCommitted(s.notifyCommit)
	if err := eng.Play(context.Background(), testScript(), typewriter.PlayOptions{}); err != nil {
		t.Fatalf("Play error: %v", err)
	}
	commits := 0
	for len(s.ch) > 0 {
		ev := <-s.ch
		if ev.kind == evCommit {
			commits++
		}
		m, _ = update(t, m, bootEventMsg(ev))
	}
	if commits != 2 {
		t.Fatalf("expected 2 commit events, got %d", commits)
	}
	if len(m.lines) != 2 || m.lines[0] != "$ ls" || m.lines[1] != "[OK] pronto." {
		t.Fatalf("unexpected terminal lines: %q", m.lines)
	}
	if m.current != "_" {
		t.Fatalf("in-progress line should be idle, got %q", m.current)
	}
	if !strings.Contains(m.term.View(), "pronto.") {
		t.Fatalf("viewport should show the last line:\n%s", m.term.View())
	}
}

func TestModel_BootDoneRevealsEnter(t *testing.T) {
	m := testModel()
	if strings.Contains(m.View(), "[ enter ]") {
		t.Fatalf("enter must stay hidden while booting")
	}
	// enter during boot is ignored
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.wiping {
		t.Fatalf("enter before boot end should do nothing")
	}
	// a stale run finishing does not count
	m, _ = update(t, m, bootDoneMsg{gen: m.bootGen + 7})
	if m.booted || !m.booting {
		t.Fatalf("stale done message changed state")
	}
	m = finishBoot(t, m)
	if !strings.Contains(m.View(), "[ enter ]") {
		t.Fatalf("enter should be visible after boot")
	}
}

func TestModel_CancelledBootIsNotAnError(t *testing.T) {
	m := testModel()
	m, _ = update(t, m, bootDoneMsg{gen: m.bootGen, err: typewriter.ErrCancelled})
	if m.bootErr != nil || m.booted {
		t.Fatalf("cancellation should not surface: %+v", m.bootErr)
	}
	m = testModel()
	m, _ = update(t, m, bootDoneMsg{gen: m.bootGen, err: errors.New("boom")})
	if m.bootErr == nil || !m.booted {
		t.Fatalf("unexpected failure should be shown and allow entering")
	}
}

func TestModel_WipeToHubAndBack(t *testing.T) {
	m := finishBoot(t, testModel())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !m.wiping || m.wipeSteps != int(wipeToHub/wipeFrame) {
		t.Fatalf("expected wipe to hub, steps=%d", m.wipeSteps)
	}
	id := m.wipeID
	// second enter during the wipe is ignored
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.wipeID != id {
		t.Fatalf("second enter restarted the wipe")
	}
	_ = m.View()
	m = runWipe(t, m)
	if m.screen != screenHub {
		t.Fatalf("expected hub after wipe")
	}

	gen := m.bootGen
	m, _ = update(t, m, keyRunes("b"))
	if m.wipeSteps != int(wipeToHero/wipeFrame) {
		t.Fatalf("unexpected back wipe steps %d", m.wipeSteps)
	}
	m = runWipe(t, m)
	if m.screen != screenHero || !m.booting || m.booted || m.bootGen != gen+1 {
		t.Fatalf("returning to hero should replay the boot: screen=%v booting=%v gen=%d", m.screen, m.booting, m.bootGen)
	}
	// ticks from an old wipe are dropped
	m, cmd = update(t, m, wipeTickMsg{id: id})
	if cmd != nil {
		t.Fatalf("stale wipe tick should be ignored")
	}
}

func hubModel(t *testing.T) model {
	t.Helper()
	m := finishBoot(t, testModel())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	return runWipe(t, m)
}

func TestModel_Tabs(t *testing.T) {
	m := hubModel(t)
	if m.tab != tabPanel {
		t.Fatalf("hub should open on the panel tab")
	}
	m, _ = update(t, m, keyRunes("3"))
	if m.tab != tabTools {
		t.Fatalf("3 should select tools")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabPanel {
		t.Fatalf("tab should wrap to panel, got %v", m.tab)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != tabTools {
		t.Fatalf("shift+tab should wrap to tools, got %v", m.tab)
	}
}

func TestModel_ProjectToggleLabels(t *testing.T) {
	m := hubModel(t)
	m, _ = update(t, m, keyRunes("2"))
	if v := m.View(); !strings.Contains(v, "Mostrar") || strings.Contains(v, "Ocultar") {
		t.Fatalf("collapsed cards should read Mostrar")
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.expanded[0] {
		t.Fatalf("enter should expand the selected card")
	}
	if cmd == nil {
		t.Fatalf("expanding should request rendered details")
	}
	msg := cmd()
	dm, ok := msg.(detailsMsg)
	if !ok || dm.index != 0 || dm.width != m.detailsWidth || strings.TrimSpace(dm.out) == "" {
		t.Fatalf("unexpected details msg: %#v", msg)
	}
	m, _ = update(t, m, dm)
	if !strings.Contains(m.View(), "Ocultar") {
		t.Fatalf("expanded card should read Ocultar")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.expanded[0] {
		t.Fatalf("second enter should collapse")
	}
}

func TestModel_ProjectFilter(t *testing.T) {
	m := hubModel(t)
	m, _ = update(t, m, keyRunes("2"))
	m, _ = update(t, m, keyRunes("/"))
	if !m.filtering {
		t.Fatalf("/ should open the filter")
	}
	for _, r := range "ctf" {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	if len(m.visible) != 1 || m.profile.Projects[m.visible[0]].Title != "ctf-notes" {
		t.Fatalf("filter should keep only ctf-notes, got %v", m.visible)
	}
	// q is typed into the filter, not treated as quit
	m, _ = update(t, m, keyRunes("q"))
	if m.quitting {
		t.Fatalf("typing q in the filter must not quit")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.filtering || len(m.visible) != len(m.profile.Projects) {
		t.Fatalf("esc should clear the filter")
	}
}

func TestModel_CopyTool(t *testing.T) {
	var copied string
	old := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = old })

	m := hubModel(t)
	m, _ = update(t, m, keyRunes("3"))
	m, _ = update(t, m, keyRunes("j"))
	m, cmd := update(t, m, keyRunes("c"))
	if cmd == nil {
		t.Fatalf("c should copy")
	}
	m, _ = update(t, m, cmd())
	want := m.profile.Tools[1]
	if copied != want.Value {
		t.Fatalf("copied %q, want %q", copied, want.Value)
	}
	if !strings.Contains(m.View(), "copiado: "+want.Name) {
		t.Fatalf("expected copy feedback in status line")
	}
}

func typeInto(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	return m
}

func TestPalette_OpensAndRunsPartialCommand(t *testing.T) {
	m := hubModel(t)
	m, _ = update(t, m, keyRunes(":"))
	if !m.paletteOpen || len(m.slashFiltered) != len(slashCmds) {
		t.Fatalf("palette should open with every command listed")
	}
	m = typeInto(t, m, "proj")
	if len(m.slashFiltered) != 1 || m.slashFiltered[0].Name != "/projetos" {
		t.Fatalf("unexpected filter result: %v", m.slashFiltered)
	}
	if !strings.Contains(m.View(), "/projetos") {
		t.Fatalf("palette should render the match")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.paletteOpen || m.tab != tabProjects {
		t.Fatalf("enter should close the palette and switch tab, open=%v tab=%v", m.paletteOpen, m.tab)
	}
}

func TestPalette_CopyByName(t *testing.T) {
	var copied string
	old := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = old })

	m := hubModel(t)
	m, _ = update(t, m, keyRunes(":"))
	m = typeInto(t, m, "copiar git")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("/copiar should return a copy command")
	}
	m, _ = update(t, m, cmd())
	if m.tab != tabTools || m.profile.Tools[m.toolSel].Name != "github" {
		t.Fatalf("expected github selected on tools tab")
	}
	if copied != m.profile.Tools[m.toolSel].Value {
		t.Fatalf("copied %q", copied)
	}
}

func TestPalette_EscClosesAndUnknownNotifies(t *testing.T) {
	m := hubModel(t)
	m, _ = update(t, m, keyRunes(":"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.paletteOpen || m.screen != screenHub {
		t.Fatalf("esc should only close the palette")
	}
	m, _ = update(t, m, keyRunes(":"))
	m = typeInto(t, m, "zzzz")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !strings.Contains(m.notice, "desconhecido") {
		t.Fatalf("expected unknown command notice, got %q", m.notice)
	}
}

func TestFilterSlashCommands_Aliases(t *testing.T) {
	got := filterSlashCommands("/qu")
	if len(got) != 1 || got[0].Name != "/sair" {
		t.Fatalf("alias prefix should find /sair, got %v", got)
	}
	if canonicalSlash("/REPLAY") != "/reiniciar" {
		t.Fatalf("aliases should resolve case-insensitively")
	}
	if canonicalSlash("/nope") != "" {
		t.Fatalf("unknown names resolve to empty")
	}
}

func TestModel_ScriptReloadReplaysOnHero(t *testing.T) {
	m := finishBoot(t, testModel())
	gen := m.bootGen
	next := typewriter.Script{Lines: []typewriter.Line{{Segments: []typewriter.Segment{typewriter.Seg("x", "")}}}}
	m, cmd := update(t, m, scriptLoadedMsg{script: next})
	if cmd == nil || m.bootGen != gen+1 || m.bootScript.Len() != 1 {
		t.Fatalf("reload on hero should replay the new script")
	}
	m, _ = update(t, m, scriptLoadedMsg{err: typewriter.ErrInvalidScript})
	if m.bootScript.Len() != 1 || !strings.Contains(m.notice, "script inválido") {
		t.Fatalf("invalid reload should keep the script and report it")
	}
}

func TestModel_StaleBootNeverSupersedesNewer(t *testing.T) {
	// commands run on their own goroutines, so either playback may start first
	for _, newerFirst := range []bool{true, false} {
		m := finishBoot(t, testModel())
		stale := m.startBoot()
		current := m.startBoot()

		var staleMsg, currentMsg tea.Msg
		if newerFirst {
			currentMsg = current()
			staleMsg = stale()
		} else {
			staleMsg = stale()
			currentMsg = current()
		}
		sd, ok := staleMsg.(bootDoneMsg)
		if !ok || !errors.Is(sd.err, typewriter.ErrCancelled) {
			t.Fatalf("newerFirst=%v: stale boot should be cancelled, got %#v", newerFirst, staleMsg)
		}
		cd, ok := currentMsg.(bootDoneMsg)
		if !ok || cd.err != nil || cd.gen != m.bootGen {
			t.Fatalf("newerFirst=%v: current boot should finish, got %#v", newerFirst, currentMsg)
		}
		if n := len(m.engine.Scrollback()); n != m.bootScript.Len() {
			t.Fatalf("newerFirst=%v: scrollback has %d lines", newerFirst, n)
		}
		m, _ = update(t, m, cd)
		m, _ = update(t, m, sd)
		if m.booting || !m.booted {
			t.Fatalf("newerFirst=%v: enter should unlock after the current boot", newerFirst)
		}
		m.sink.Close()
	}
}

func TestWatchScriptCmd_ReturnsAfterWatcherClose(t *testing.T) {
	p := filepath.Join(t.TempDir(), "boot.yaml")
	if err := os.WriteFile(p, script.DefaultBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := script.NewWatcher(p, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- watchScriptCmd(w)() }()
	_ = w.Close()
	select {
	case msg := <-done:
		if msg != nil {
			t.Fatalf("closed watcher should yield no message, got %#v", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watch command still blocked after Close")
	}
}

func TestWipeLines_CoversLeftColumns(t *testing.T) {
	out := wipeLines("abcdef\nxyz", 6, 3, 2)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected frame padded to height 3, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "def") || strings.Contains(lines[0], "ab") {
		t.Fatalf("left columns should be covered: %q", lines[0])
	}
}
