package ui

import (
	"time"

	"bootterm/internal/typewriter"
)

// Bubble Tea messages

// boot playback
type bootEventMsg bootEvent
type bootDoneMsg struct {
	gen int
	err error
}

// wipe transition frame; id drops ticks from an earlier wipe
type wipeTickMsg struct{ id int }

// script file changed on disk / reloaded
type scriptChangedMsg struct{}
type scriptLoadedMsg struct {
	script typewriter.Script
	err    error
}

// rendered project details
type detailsMsg struct {
	index int
	width int
	out   string
}

// clipboard result
type copiedMsg struct {
	name string
	err  error
}

// periodic tick for status bar time and transient notices
type tickMsg time.Time
