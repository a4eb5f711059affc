package optio

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func newTestLogger(t *testing.T) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	clearColorEnv(t)
	var out, errb bytes.Buffer
	m := New().NoColor().WithOut(&out).WithErr(&errb)
	return NewLogger(m), &out, &errb
}

func TestLoggerLevelFilter(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(out.String(), "hidden") {
		t.Fatalf("debug should be filtered at info level: %q", out.String())
	}
	if out.String() != "◆ shown\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	l.WithLevel(LevelDebug).Debug("trace %d", 1)
	if out.String() != "● trace 1\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLoggerEnabled(t *testing.T) {
	var nilLogger *Logger
	if nilLogger.Enabled(LevelError) {
		t.Fatalf("nil logger must not be enabled")
	}
	l, _, _ := newTestLogger(t)
	if l.Enabled(LevelDebug) || !l.Enabled(LevelWarning) {
		t.Fatalf("default level should be info")
	}
}

func TestLoggerErrorsToStderr(t *testing.T) {
	l, out, errb := newTestLogger(t)
	l.Warning("careful")
	l.Error("broken")
	l.Success("ok")
	if errb.String() != "▲ careful\n✗ broken\n" {
		t.Fatalf("stderr got %q", errb.String())
	}
	if out.String() != "✓ ok\n" {
		t.Fatalf("stdout got %q", out.String())
	}

	errb.Reset()
	l.ErrorsToStderr(false).Error("here")
	if out.String() != "✓ ok\n✗ here\n" || errb.Len() != 0 {
		t.Fatalf("errors should go to stdout: %q / %q", out.String(), errb.String())
	}
}

func TestLoggerFormats(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.WithFormat(LogFormatTagged).Info("a")
	l.WithFormat(LogFormatPlain).Info("b")
	l.SetPrefix(LevelInfo, ">>").Info("c")
	l.WithTemplate("{{.Level}}: {{.Message}}").Info("d")
	want := "[INFO] a\nb\n>> c\nINFO: d\n"
	if out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}
}

func TestLoggerTimestamp(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.WithFormat(LogFormatTagged).WithTimestamp(true).WithTimeFormat("TS").Info("x")
	if out.String() != "[INFO] [TS] x\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLoggerBlankMessage(t *testing.T) {
	l, out, _ := newTestLogger(t)
	l.Info("  ")
	if out.String() != "  \n" {
		t.Fatalf("blank lines should not be prefixed, got %q", out.String())
	}
}

func TestLoggerColor(t *testing.T) {
	clearColorEnv(t)
	var out bytes.Buffer
	m := New().ForceColor().ForceColorLevel(1).WithOut(&out)
	NewLogger(m).Info("x")
	if out.String() != "\x1b[96m◆ x\x1b[0m\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLoggerConcurrent(t *testing.T) {
	l, out, _ := newTestLogger(t)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Info("line %d", i)
		}()
	}
	wg.Wait()
	if got := strings.Count(out.String(), "\n"); got != 20 {
		t.Fatalf("want 20 lines, got %d", got)
	}
}

func TestLogLevelString(t *testing.T) {
	if LevelWarning.String() != "WARN" || LogLevel(42).String() != "UNKNOWN" {
		t.Fatalf("bad level names")
	}
}
