package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bootterm/internal/script"
	"bootterm/internal/system"
	"bootterm/internal/typewriter"
	"bootterm/internal/ui"
)

var (
	playFormat     string
	playSpeed      int
	playJitter     int
	playStartDelay int
	playWatch      bool
	playFrames     bool
)

func init() {
	f := playCmd.Flags()
	f.StringVar(&playFormat, "format", "ansi", "output format: ansi|markup|plain")
	f.IntVar(&playSpeed, "speed", 0, "per-character delay in ms (default from config)")
	f.IntVar(&playJitter, "jitter", 0, "random ± jitter per character in ms")
	f.IntVar(&playStartDelay, "start-delay", 0, "delay before the first line in ms")
	f.BoolVar(&playWatch, "watch", false, "replay whenever the script file changes")
	f.BoolVar(&playFrames, "frames", false, "print every intermediate frame on its own line")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Type the boot script to stdout without the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, err := rendererFor(playFormat, appCfg.Theme.Cursor)
		if err != nil {
			return err
		}
		opts := appCfg.PlayOptions()
		fl := cmd.Flags()
		if fl.Changed("speed") {
			opts.BaseDelay = time.Duration(playSpeed) * time.Millisecond
		}
		if fl.Changed("jitter") {
			opts.Jitter = time.Duration(playJitter) * time.Millisecond
		}
		if fl.Changed("start-delay") {
			opts.StartDelay = time.Duration(playStartDelay) * time.Millisecond
		}
		if err := opts.Validate(); err != nil {
			return err
		}
		s, err := script.Load(appCfg.Script)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		var sink typewriter.Sink
		if playFrames {
			sink = &frameSink{w: out}
		} else {
			ws := typewriter.NewWriterSink(out)
			ws.Plain = playFormat != "ansi"
			sink = ws
		}
		eng := typewriter.New(sink, typewriter.WithRenderer(renderer))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		if !playWatch {
			return quietCancel(eng.Play(ctx, s, opts))
		}
		if appCfg.Script == "" {
			return errors.New("--watch needs a script file (--script or config script)")
		}
		return watchAndReplay(ctx, eng, appCfg.Script, s, opts, out)
	},
}

func rendererFor(format, cursor string) (typewriter.Renderer, error) {
	switch strings.ToLower(format) {
	case "ansi", "":
		return ui.TermRenderer(cursor), nil
	case "markup", "html":
		return typewriter.MarkupRenderer{}, nil
	case "plain", "text":
		return typewriter.PlainRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want ansi, markup or plain)", format)
	}
}

// quietCancel treats an interrupt as a normal exit.
func quietCancel(err error) error {
	if errors.Is(err, typewriter.ErrCancelled) {
		return nil
	}
	return err
}

// watchAndReplay plays s, then restarts playback each time path changes until ctx ends.
// A newer Play supersedes the running one.
func watchAndReplay(ctx context.Context, eng *typewriter.Engine, path string, s typewriter.Script, opts typewriter.PlayOptions, out io.Writer) error {
	w, err := script.NewWatcher(path, 150*time.Millisecond)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	r := newReplayer(ctx, eng, opts)
	defer r.stop()
	r.start(s)
	for {
		select {
		case <-ctx.Done():
			eng.Reset()
			return nil
		case _, ok := <-w.C():
			if !ok {
				return nil
			}
			next, err := script.Load(path)
			if err != nil {
				system.Logger.Warn("reload script", "path", path, "err", err)
				continue
			}
			fmt.Fprintln(out)
			system.Logger.Info("script changed, replaying", "path", path)
			r.start(next)
		}
	}
}

// replayer starts playbacks in the background. Starting one cancels the
// previous ctx first; a Play whose ctx is already cancelled never types, so
// only the newest script ends up on screen whatever order goroutines run in.
type replayer struct {
	ctx    context.Context
	eng    *typewriter.Engine
	opts   typewriter.PlayOptions
	cancel context.CancelFunc
}

func newReplayer(ctx context.Context, eng *typewriter.Engine, opts typewriter.PlayOptions) *replayer {
	return &replayer{ctx: ctx, eng: eng, opts: opts, cancel: func() {}}
}

// start plays s; the returned channel yields Play's result.
func (r *replayer) start(s typewriter.Script) <-chan error {
	r.cancel()
	rctx, cancel := context.WithCancel(r.ctx)
	r.cancel = cancel
	done := make(chan error, 1)
	go func() {
		err := r.eng.Play(rctx, s, r.opts)
		if err != nil && !errors.Is(err, typewriter.ErrCancelled) {
			system.Logger.Warn("playback", "err", err)
		}
		done <- err
	}()
	return done
}

func (r *replayer) stop() { r.cancel() }

// frameSink prints every sink call on its own line, for inspecting renderer output.
type frameSink struct {
	w io.Writer
}

func (s *frameSink) ReplaceCurrent(line string) error { return s.write("~ " + line) }
func (s *frameSink) AppendLine(line string) error     { return s.write("+ " + line) }
func (s *frameSink) Clear() error                     { return s.write("!") }

func (s *frameSink) write(line string) error {
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		return fmt.Errorf("%w: %v", typewriter.ErrTargetUnavailable, err)
	}
	return nil
}
