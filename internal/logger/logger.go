// Package logger provides a thin wrapper around zerolog.Logger used by the
// configuration pipeline and the tkconfig command.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, etc.) are available directly on *Logger.
package logger

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger writing JSON to w at the given level. The role
// label is attached to every entry. A nil w writes to os.Stderr.
func New(role string, level zerolog.Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := zerolog.New(w).Level(level).With().
		Str("role", role).
		Timestamp().
		Logger()
	return &Logger{l}
}

// NewConsole constructs a *Logger with human-readable console output,
// used by the command line tool.
func NewConsole(role string, level zerolog.Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: !isTerminal(w)}
	l := zerolog.New(cw).Level(level).With().
		Str("role", role).
		Timestamp().
		Logger()
	return &Logger{l}
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a logger inheriting the receiver's fields with an extra
// "component" field.
func (l *Logger) Child(component string) *Logger {
	return &Logger{l.With().Str("component", component).Logger()}
}

// WithContext stores the logger in ctx.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext extracts the logger stored in ctx by WithContext.
// Without one, a disabled logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// ParseLevel converts a level name to a zerolog.Level, falling back to
// info for unknown names.
func ParseLevel(name string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || name == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
