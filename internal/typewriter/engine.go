// Package typewriter animates styled text into a scrolling line log one
// character at a time.
//
// An Engine owns a Sink (the render target) and at most one active playback.
// Every frame rendered while typing keeps the exact segment boundaries of the
// finished line: completed segments, then the styled prefix of the current
// segment, then a cursor marker.
package typewriter

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/rivo/uniseg"

	"bootterm/internal/system"
)

// Commit describes one line moved into the scrollback.
type Commit struct {
	// Index is the zero-based line index within the script.
	Index int
	Line  Line
	// Rendered is the committed output, cursor removed.
	Rendered string
	// Total is the number of lines in the running script.
	Total int
}

// CursorState is the position of the line being typed.
type CursorState struct {
	Running bool
	Line    int
	Segment int
	Char    int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRenderer sets the renderer. Default is MarkupRenderer.
func WithRenderer(r Renderer) Option { return func(e *Engine) { e.renderer = r } }

// WithClock sets the clock used for every suspension.
func WithClock(c Clock) Option { return func(e *Engine) { e.clock = c } }

// WithRand sets the jitter source.
func WithRand(r *rand.Rand) Option { return func(e *Engine) { e.rng = r } }

// WithLogger sets the logger.
func WithLogger(l *clog.Logger) Option { return func(e *Engine) { e.log = l } }

type run struct {
	id     uint64
	cancel context.CancelFunc
	done   chan struct{}
}

// Engine renders scripts into a sink. Play and Reset are safe to call from
// any goroutine; commit hooks must not call them synchronously.
type Engine struct {
	sink     Sink
	renderer Renderer
	clock    Clock
	rng      *rand.Rand
	log      *clog.Logger

	mu         sync.Mutex
	scrollback []string
	current    string
	pos        CursorState
	hooks      []func(Commit)
	active     *run
	gen        uint64
}

// New returns an idle engine writing to sink.
func New(sink Sink, opts ...Option) *Engine {
	e := &Engine{
		sink:     sink,
		renderer: MarkupRenderer{},
		clock:    RealClock{},
		log:      system.Logger.WithPrefix("typewriter"),
	}
	for _, o := range opts {
		o(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15))
	}
	return e
}

// OnLineCommitted registers fn to run after every commit, on the playback goroutine.
func (e *Engine) OnLineCommitted(fn func(Commit)) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.hooks = append(e.hooks, fn)
	e.mu.Unlock()
}

// Scrollback returns a copy of the committed lines.
func (e *Engine) Scrollback() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.scrollback...)
}

// Current returns the in-progress render, cursor included.
func (e *Engine) Current() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Cursor returns the typing position.
func (e *Engine) Cursor() CursorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pos
}

// Running reports whether a playback is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active != nil
}

// Reset cancels any active playback, waits for it to stop, then clears the
// scrollback and the in-progress area.
func (e *Engine) Reset() {
	e.mu.Lock()
	r := e.active
	e.active = nil
	e.mu.Unlock()
	if r != nil {
		r.cancel()
		<-r.done
	}
	e.mu.Lock()
	e.scrollback = nil
	e.current = ""
	e.pos = CursorState{}
	e.mu.Unlock()
	if err := e.sink.Clear(); err != nil {
		e.log.Debug("reset: clear sink", "err", err)
	}
}

// Play types script into the sink and returns when the last line's post
// delay has elapsed. A previous playback is cancelled first and its output
// cleared. Errors: ErrInvalidScript, ErrTargetUnavailable, ErrCancelled.
func (e *Engine) Play(ctx context.Context, script Script, opts PlayOptions) error {
	if err := script.Validate(); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	script = script.Clone()

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r := &run{cancel: cancel, done: make(chan struct{})}
	defer close(r.done)

	e.mu.Lock()
	// a caller that is already cancelled must not supersede the active run
	if err := ctx.Err(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	prev := e.active
	e.gen++
	r.id = e.gen
	e.active = r
	e.mu.Unlock()
	if prev != nil {
		prev.cancel()
		<-prev.done
	}
	defer e.finish(r)

	e.mu.Lock()
	e.scrollback = nil
	e.current = ""
	e.pos = CursorState{Running: true}
	e.mu.Unlock()
	if err := e.sink.Clear(); err != nil {
		return e.unavailable(err)
	}
	if err := rctx.Err(); err != nil {
		return e.cancelled(ctx, r)
	}
	if err := e.show(e.renderer.Cursor()); err != nil {
		return e.unavailable(err)
	}
	e.log.Debug("playback started", "run", r.id, "lines", len(script.Lines))

	if err := e.pause(rctx, opts.StartDelay); err != nil {
		return e.cancelled(ctx, r)
	}
	total := len(script.Lines)
	cursor := e.renderer.Cursor()
	for li, line := range script.Lines {
		var done strings.Builder
		for si, seg := range line.Segments {
			var typed strings.Builder
			ci := 0
			gr := uniseg.NewGraphemes(seg.Text)
			for gr.Next() {
				typed.WriteString(gr.Str())
				ci++
				e.setPos(li, si, ci)
				frame := done.String() + e.renderer.Segment(seg.Class, typed.String()) + cursor
				if err := e.show(frame); err != nil {
					return e.unavailable(err)
				}
				if err := e.pause(rctx, e.charDelay(opts)); err != nil {
					return e.cancelled(ctx, r)
				}
			}
			done.WriteString(e.renderer.Segment(seg.Class, seg.Text))
		}
		c := Commit{Index: li, Line: line, Rendered: done.String(), Total: total}
		if err := e.commit(c); err != nil {
			return e.unavailable(err)
		}
		if err := e.pause(rctx, line.PostDelay); err != nil {
			return e.cancelled(ctx, r)
		}
	}
	e.log.Debug("playback finished", "run", r.id, "lines", total)
	return nil
}

func (e *Engine) finish(r *run) {
	e.mu.Lock()
	if e.active == r {
		e.active = nil
		e.pos.Running = false
	}
	e.mu.Unlock()
}

func (e *Engine) setPos(line, seg, char int) {
	e.mu.Lock()
	e.pos = CursorState{Running: true, Line: line, Segment: seg, Char: char}
	e.mu.Unlock()
}

func (e *Engine) show(frame string) error {
	if err := e.sink.ReplaceCurrent(frame); err != nil {
		return err
	}
	e.mu.Lock()
	e.current = frame
	e.mu.Unlock()
	return nil
}

func (e *Engine) commit(c Commit) error {
	if err := e.sink.AppendLine(c.Rendered); err != nil {
		return err
	}
	e.mu.Lock()
	e.scrollback = append(e.scrollback, c.Rendered)
	hooks := slices.Clone(e.hooks)
	e.mu.Unlock()
	if err := e.show(e.renderer.Cursor()); err != nil {
		return err
	}
	e.log.Debug("line committed", "index", c.Index, "total", c.Total)
	for _, h := range hooks {
		h(c)
	}
	return nil
}

// pause sleeps and then checks cancellation; fake clocks may return early.
func (e *Engine) pause(ctx context.Context, d time.Duration) error {
	if err := e.clock.Sleep(ctx, d); err != nil {
		return err
	}
	return ctx.Err()
}

func (e *Engine) charDelay(o PlayOptions) time.Duration {
	d := o.BaseDelay
	if o.Jitter > 0 {
		d += time.Duration(e.rng.Int64N(2*int64(o.Jitter)+1)) - o.Jitter
	}
	if d < 0 {
		d = 0
	}
	return d
}

// cancelled drops the uncommitted line. When the run was superseded the
// newer owner clears the sink itself, so nothing is written here.
func (e *Engine) cancelled(parent context.Context, r *run) error {
	e.mu.Lock()
	owner := e.active == r
	e.mu.Unlock()
	if owner {
		if err := e.show(e.renderer.Cursor()); err != nil {
			e.log.Debug("cancel: idle cursor", "err", err)
		}
	}
	e.log.Debug("playback cancelled", "run", r.id)
	if err := parent.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	return ErrCancelled
}

func (e *Engine) unavailable(err error) error {
	e.log.Warn("render target unavailable", "err", err)
	if errors.Is(err, ErrTargetUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTargetUnavailable, err)
}
