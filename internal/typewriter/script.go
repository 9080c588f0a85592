package typewriter

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by Play. Test with errors.Is.
var (
	// ErrInvalidScript means the script or options were rejected before any rendering.
	ErrInvalidScript = errors.New("invalid script")
	// ErrTargetUnavailable means the sink stopped accepting output mid-playback.
	ErrTargetUnavailable = errors.New("render target unavailable")
	// ErrCancelled is the normal outcome of Reset, a newer Play, or ctx cancellation.
	ErrCancelled = errors.New("playback cancelled")
)

// Segment is a run of text sharing one style class.
type Segment struct {
	Text  string
	Class string
}

// Seg is shorthand for building segments in static scripts.
func Seg(text, class string) Segment { return Segment{Text: text, Class: class} }

// Line is one terminal output line.
type Line struct {
	Segments []Segment
	// LineBreakAfter is informational; committed lines are always separate entries.
	LineBreakAfter bool
	// PostDelay is the pause after the line commits.
	PostDelay time.Duration
}

// Text returns the plain concatenated text of the line.
func (l Line) Text() string {
	n := 0
	for _, s := range l.Segments {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range l.Segments {
		b = append(b, s.Text...)
	}
	return string(b)
}

// Script is the fixed, ordered list of lines to animate.
type Script struct {
	Lines []Line
}

// Len returns the number of lines.
func (s Script) Len() int { return len(s.Lines) }

// TotalPostDelay sums all line post-delays, the lower bound of a run's duration.
func (s Script) TotalPostDelay() time.Duration {
	var d time.Duration
	for _, l := range s.Lines {
		d += l.PostDelay
	}
	return d
}

// Clone returns a deep copy so callers can hand out scripts without sharing slices.
func (s Script) Clone() Script {
	out := Script{Lines: make([]Line, len(s.Lines))}
	for i, l := range s.Lines {
		segs := make([]Segment, len(l.Segments))
		copy(segs, l.Segments)
		l.Segments = segs
		out.Lines[i] = l
	}
	return out
}

// Validate reports ErrInvalidScript for an empty script or negative delays.
// Lines without segments are legal blank lines.
func (s Script) Validate() error {
	if len(s.Lines) == 0 {
		return fmt.Errorf("%w: script has no lines", ErrInvalidScript)
	}
	for i, l := range s.Lines {
		if l.PostDelay < 0 {
			return fmt.Errorf("%w: line %d: negative post delay %s", ErrInvalidScript, i+1, l.PostDelay)
		}
	}
	return nil
}

// PlayOptions configures reveal timing.
type PlayOptions struct {
	// BaseDelay is the pause after each revealed character.
	BaseDelay time.Duration
	// Jitter adds a uniform random variance in [-Jitter, +Jitter] to BaseDelay.
	Jitter time.Duration
	// StartDelay is the pause before the first line.
	StartDelay time.Duration
}

// DefaultPlayOptions mirrors the landing page timings.
func DefaultPlayOptions() PlayOptions {
	return PlayOptions{BaseDelay: 10 * time.Millisecond, StartDelay: 220 * time.Millisecond}
}

// Validate rejects negative durations.
func (o PlayOptions) Validate() error {
	switch {
	case o.BaseDelay < 0:
		return fmt.Errorf("%w: negative base delay %s", ErrInvalidScript, o.BaseDelay)
	case o.Jitter < 0:
		return fmt.Errorf("%w: negative jitter %s", ErrInvalidScript, o.Jitter)
	case o.StartDelay < 0:
		return fmt.Errorf("%w: negative start delay %s", ErrInvalidScript, o.StartDelay)
	}
	return nil
}
