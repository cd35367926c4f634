// Package log provides the best-effort change-notification sink of
// spec.md §6 ("change-reporting sinks, best-effort, no-op permitted"). The
// teacher has no structured logger of its own — it only threads a
// mainer.Stdio for testable CLI output — so this package follows that same
// injected-not-global shape, widened to leveled logging so Pass can report
// renames and rewrites without forcing every caller to care.
package log

import (
	"fmt"
	stdlog "log"
	"os"
)

// Logger is the minimal leveled-logging contract Pass depends on. A nil
// Logger is never passed around; callers needing "no logging" use NopLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}

// NopLogger is a Logger that discards all messages, the default for a Pass
// that does not care about change notifications (spec.md §6: "best-effort,
// no-op permitted").
var NopLogger Logger = nopLogger{}

// StdLogger adapts the standard library's log.Logger to this package's
// Logger interface, with a level prefix and an optional minimum level.
type StdLogger struct {
	out      *stdlog.Logger
	minLevel Level
}

// Level is a logging verbosity threshold.
type Level int

// Levels, low to high.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
)

// NewStdLogger builds a StdLogger writing to os.Stderr, filtering out
// messages below min.
func NewStdLogger(min Level) *StdLogger {
	return &StdLogger{out: stdlog.New(os.Stderr, "", stdlog.LstdFlags), minLevel: min}
}

func (l *StdLogger) log(level Level, prefix, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	l.out.Print(prefix + fmt.Sprintf(format, args...))
}

func (l *StdLogger) Debugf(format string, args ...any) { l.log(LevelDebug, "DEBUG ", format, args...) }
func (l *StdLogger) Infof(format string, args ...any)  { l.log(LevelInfo, "INFO ", format, args...) }
func (l *StdLogger) Warnf(format string, args ...any)  { l.log(LevelWarn, "WARN ", format, args...) }
