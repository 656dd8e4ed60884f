// Package logger wraps zerolog.Logger with the verbosity scale, prefix
// switch and in-memory capture used by the pymodule application.
//
// The Logger type embeds zerolog.Logger, so Debug, Info, Warn, Error and the
// rest of the zerolog API are available directly on *Logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// TimeFormat is the timestamp layout used when prefixes are enabled.
const TimeFormat = "2006-01-02 15:04:05"

// ComponentField names the field that carries the emitting component.
const ComponentField = "component"

// Filtering happens per logger; the global floor must not hide trace events.
func init() {
	if zerolog.GlobalLevel() > zerolog.TraceLevel {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
}

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// Options controls how New builds a logger.
type Options struct {
	// Verbose selects the level on a 0..6 scale, see Level.
	Verbose int

	// Prefix adds timestamp, level and component to every line. When false,
	// only the message and its fields are written.
	Prefix bool

	// Component is attached to every event when non-empty.
	Component string

	// Sink, when set, receives a copy of every line.
	Sink *StringSink
}

// Level maps the 0..6 verbosity scale onto zerolog levels:
// 0 disabled, 1 fatal, 2 error, 3 warn, 4 info, 5 debug, 6 trace.
// Values outside the scale are clamped.
func Level(verbose int) zerolog.Level {
	switch {
	case verbose <= 0:
		return zerolog.Disabled
	case verbose == 1:
		return zerolog.FatalLevel
	case verbose == 2:
		return zerolog.ErrorLevel
	case verbose == 3:
		return zerolog.WarnLevel
	case verbose == 4:
		return zerolog.InfoLevel
	case verbose == 5:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// New constructs a *Logger writing human-readable lines to out.
// A nil out writes to os.Stderr.
func New(out io.Writer, opts Options) *Logger {
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer = consoleWriter(out, opts.Prefix)
	if opts.Sink != nil {
		w = zerolog.MultiLevelWriter(w, consoleWriter(opts.Sink, opts.Prefix))
	}

	ctx := zerolog.New(w).Level(Level(opts.Verbose)).With()
	if opts.Prefix {
		ctx = ctx.Timestamp()
	}
	if opts.Component != "" {
		ctx = ctx.Str(ComponentField, opts.Component)
	}
	return &Logger{ctx.Logger()}
}

func consoleWriter(out io.Writer, prefix bool) zerolog.ConsoleWriter {
	cw := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: TimeFormat,
	}
	if !prefix {
		cw.PartsExclude = []string{zerolog.TimestampFieldName, zerolog.LevelFieldName}
	}
	return cw
}

// Nop returns a *Logger that discards all output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a logger that inherits the receiver's fields and level and
// tags its events with the given component.
func (l *Logger) Child(component string) *Logger {
	return &Logger{l.With().Str(ComponentField, component).Logger()}
}
