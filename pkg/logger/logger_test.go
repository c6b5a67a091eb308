package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

func newTestLogger(level string) (*AppLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLoggerWithWriter(level, &buf)
	l.now = func() time.Time { return time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC) }
	return l, &buf
}

func TestLogger_Format(t *testing.T) {
	l, buf := newTestLogger("debug")

	l.Info("Document classified", "file", "invoice.pdf", "confidence", 0.92)

	want := "[2025-06-01 09:30:00] INFO: Document classified file=invoice.pdf confidence=0.92\n"
	if buf.String() != want {
		t.Fatalf("unexpected line:\n got %q\nwant %q", buf.String(), want)
	}
}

func TestLogger_ErrorAndQuoting(t *testing.T) {
	l, buf := newTestLogger("info")

	l.Error("Classification request failed", errors.New("connection reset by peer"), "model", "gemini-2.5-flash", "dangling")

	line := buf.String()
	if !strings.Contains(line, `ERROR: Classification request failed error="connection reset by peer"`) {
		t.Fatalf("error field missing or unquoted: %q", line)
	}
	if !strings.Contains(line, "model=gemini-2.5-flash") || !strings.Contains(line, "dangling=<missing>") {
		t.Fatalf("fields not rendered: %q", line)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	l, buf := newTestLogger("warn")

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("messages below warn must be filtered: %q", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected two lines, got %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		" INFO ":  INFO,
		"warning": WARN,
		"error":   ERROR,
		"bogus":   INFO,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Fatalf("parseLogLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
