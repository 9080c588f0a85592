package typewriter

import (
	"fmt"
	"io"
	"sync"

	"github.com/mattn/go-runewidth"
)

// Sink is the render target: an in-progress area plus an append-only log.
type Sink interface {
	// ReplaceCurrent swaps the in-progress area content.
	ReplaceCurrent(s string) error
	// AppendLine appends a finished line to the log.
	AppendLine(s string) error
	// Clear empties both the log and the in-progress area.
	Clear() error
}

// MemorySink keeps everything in memory. It is safe for concurrent use.
type MemorySink struct {
	mu       sync.Mutex
	current  string
	lines    []string
	frames   []string
	detached bool
}

func NewMemorySink() *MemorySink { return &MemorySink{} }

func (m *MemorySink) ReplaceCurrent(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return ErrTargetUnavailable
	}
	m.current = s
	m.frames = append(m.frames, s)
	return nil
}

func (m *MemorySink) AppendLine(s string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return ErrTargetUnavailable
	}
	m.lines = append(m.lines, s)
	return nil
}

func (m *MemorySink) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return ErrTargetUnavailable
	}
	m.lines = nil
	m.current = ""
	return nil
}

// Detach makes every later call fail, like a display that went away.
func (m *MemorySink) Detach() {
	m.mu.Lock()
	m.detached = true
	m.mu.Unlock()
}

// Current returns the in-progress content.
func (m *MemorySink) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Lines returns a copy of the committed log.
func (m *MemorySink) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// Frames returns every ReplaceCurrent payload seen so far, in order.
func (m *MemorySink) Frames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.frames...)
}

// WriterSink draws onto a console. The in-progress line is redrawn in place.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
	// Plain pads with spaces instead of erase-line, for writers that are not terminals.
	Plain   bool
	lastLen int
}

func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

func (s *WriterSink) ReplaceCurrent(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redraw(line)
}

func (s *WriterSink) AppendLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.redraw(line); err != nil {
		return err
	}
	s.lastLen = 0
	if _, err := io.WriteString(s.w, "\n"); err != nil {
		return fmt.Errorf("%w: %v", ErrTargetUnavailable, err)
	}
	return nil
}

// Clear only resets the in-progress line; a console cannot take back lines.
func (s *WriterSink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redraw("")
}

func (s *WriterSink) redraw(line string) error {
	var out string
	if s.Plain {
		w := runewidth.StringWidth(line)
		out = "\r" + line
		if pad := s.lastLen - w; pad > 0 {
			out += runewidth.FillRight("", pad)
		}
		s.lastLen = w
	} else {
		// CR + erase entire line
		out = "\r\x1b[2K" + line
	}
	if _, err := io.WriteString(s.w, out); err != nil {
		return fmt.Errorf("%w: %v", ErrTargetUnavailable, err)
	}
	return nil
}
