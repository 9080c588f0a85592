package ui

import (
	"sync"

	"bootterm/internal/typewriter"
)

type bootEventKind int

const (
	evFrame bootEventKind = iota
	evLine
	evClear
	evCommit
)

// bootEvent is one sink call (or commit notification) forwarded to the program.
type bootEvent struct {
	kind   bootEventKind
	text   string
	commit typewriter.Commit
}

// chanSink is a typewriter.Sink that forwards events to the bubbletea loop.
// Events keep their order; after Close every call fails with ErrTargetUnavailable.
type chanSink struct {
	ch   chan bootEvent
	done chan struct{}
	once sync.Once
}

func newChanSink(buf int) *chanSink {
	return &chanSink{ch: make(chan bootEvent, buf), done: make(chan struct{})}
}

func (s *chanSink) ReplaceCurrent(line string) error {
	return s.send(bootEvent{kind: evFrame, text: line})
}

func (s *chanSink) AppendLine(line string) error {
	return s.send(bootEvent{kind: evLine, text: line})
}

func (s *chanSink) Clear() error { return s.send(bootEvent{kind: evClear}) }

// notifyCommit is registered as the engine's commit hook.
func (s *chanSink) notifyCommit(c typewriter.Commit) {
	_ = s.send(bootEvent{kind: evCommit, commit: c})
}

func (s *chanSink) send(ev bootEvent) error {
	select {
	case <-s.done:
		return typewriter.ErrTargetUnavailable
	default:
	}
	select {
	case s.ch <- ev:
		return nil
	case <-s.done:
		return typewriter.ErrTargetUnavailable
	}
}

// Close detaches the sink once the program has stopped.
func (s *chanSink) Close() {
	s.once.Do(func() { close(s.done) })
}
