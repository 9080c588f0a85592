package system

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared application logger.
// It prints to stderr with timestamps enabled until Configure redirects it.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
})

// LogOptions controls where and how much the shared logger writes.
type LogOptions struct {
	Level string
	// File enables a rotating log file; stderr is no longer used.
	File string
	// Quiet discards output when no file is set (the TUI owns the terminal).
	Quiet bool
}

// Configure applies opts to Logger and returns a closer for the file writer.
func Configure(opts LogOptions) io.Closer {
	Logger.SetLevel(ParseLevel(opts.Level))
	switch {
	case strings.TrimSpace(opts.File) != "":
		w := &lj.Logger{Filename: opts.File, MaxSize: 5, MaxBackups: 3, MaxAge: 14}
		Logger.SetOutput(w)
		Logger.SetReportTimestamp(true)
		return w
	case opts.Quiet:
		Logger.SetOutput(io.Discard)
	default:
		Logger.SetOutput(os.Stderr)
	}
	return nopCloser{}
}

// ParseLevel maps debug|info|warn|error to a log level; unknown values mean info.
func ParseLevel(s string) clog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
