package log

import (
	"bytes"
	stdlog "log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNopLoggerDiscardsEverything(t *testing.T) {
	// Nothing to assert on output; this just guards against a panic and
	// documents that NopLogger satisfies Logger.
	var l Logger = NopLogger
	l.Debugf("x=%d", 1)
	l.Infof("hello")
	l.Warnf("uh oh: %s", "reason")
}

func TestStdLoggerFiltersBelowMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &StdLogger{out: stdlog.New(&buf, "", 0), minLevel: LevelInfo}

	l.Debugf("should not appear")
	l.Infof("hello %s", "world")
	l.Warnf("careful")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "INFO hello world")
	assert.Contains(t, out, "WARN careful")
}

func TestStdLoggerPrefixesByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := &StdLogger{out: stdlog.New(&buf, "", 0), minLevel: LevelDebug}

	l.Debugf("d")
	l.Infof("i")
	l.Warnf("w")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require := func(cond bool, msg string) {
		if !cond {
			t.Fatalf("unexpected log output: %v (%s)", lines, msg)
		}
	}
	require(len(lines) == 3, "expected 3 lines")
	assert.True(t, strings.HasPrefix(lines[0], "DEBUG "))
	assert.True(t, strings.HasPrefix(lines[1], "INFO "))
	assert.True(t, strings.HasPrefix(lines[2], "WARN "))
}
