// Package optio wraps process stdio with terminal detection and color support.
// It backs the option parser's logging, error and help output.
package optio

import (
	stdio "io"
	"os"
	"runtime"
	"strings"
)

// platformIO is implemented per OS in io_unix.go and io_windows.go
type platformIO interface {
	isTerminal(*os.File) bool
	termSize(*os.File) (width, height int, ok bool)
	enableVirtualTerminal() bool
	vtEnabled() bool
	colorCapabilityLevel() int // 0=none, 1=16, 2=256, 3=truecolor
}

// IOManager centralizes IO and terminal capabilities
type IOManager struct {
	in  stdio.Reader
	out stdio.Writer
	err stdio.Writer

	forceColor         bool
	noColor            bool
	forceColorLevel    int
	hasForceColorLevel bool

	p platformIO
}

// New returns a manager bound to process stdio
func New() *IOManager {
	return &IOManager{in: os.Stdin, out: os.Stdout, err: os.Stderr, p: newPlatformIO()}
}

// WithIn sets the input reader and returns the manager for chaining.
func (m *IOManager) WithIn(r stdio.Reader) *IOManager { m.in = r; return m }

// WithOut sets the standard output writer and returns the manager for chaining.
func (m *IOManager) WithOut(w stdio.Writer) *IOManager { m.out = w; return m }

// WithErr sets the standard error writer and returns the manager for chaining.
func (m *IOManager) WithErr(w stdio.Writer) *IOManager { m.err = w; return m }

// ForceColor forces color output on, regardless of environment.
func (m *IOManager) ForceColor() *IOManager { m.forceColor = true; m.noColor = false; return m }

// NoColor disables color output, regardless of environment.
func (m *IOManager) NoColor() *IOManager { m.noColor = true; m.forceColor = false; return m }

// ColorAuto uses environment heuristics to determine color support.
func (m *IOManager) ColorAuto() *IOManager { m.noColor = false; m.forceColor = false; return m }

// ForceColorLevel forces a color level (0=none, 1=16, 2=256, 3=truecolor).
func (m *IOManager) ForceColorLevel(level int) *IOManager {
	m.forceColorLevel = level
	m.hasForceColorLevel = true
	return m
}

func (m *IOManager) In() stdio.Reader  { return m.in }
func (m *IOManager) Out() stdio.Writer { return m.out }
func (m *IOManager) Err() stdio.Writer { return m.err }

// IsTTY reports whether output goes to a terminal.
func (m *IOManager) IsTTY() bool { return m.terminal(m.out) }

// IsInteractive reports whether input comes from a terminal outside CI.
func (m *IOManager) IsInteractive() bool { return m.terminal(m.in) && os.Getenv("CI") == "" }

// IsPiped reports whether input comes from a pipe, a file or an in-memory reader.
func (m *IOManager) IsPiped() bool { return !m.terminal(m.in) }

// IsRedirected reports whether output goes somewhere other than a terminal.
func (m *IOManager) IsRedirected() bool { return !m.terminal(m.out) }

// terminal reports whether stream is an *os.File attached to a terminal
func (m *IOManager) terminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && m.p.isTerminal(f)
}

func (m *IOManager) outSize() (width, height int, ok bool) {
	if f, isFile := m.out.(*os.File); isFile {
		return m.p.termSize(f)
	}
	return 0, 0, false
}

// Width returns the terminal width, falling back to $COLUMNS and then 80
func (m *IOManager) Width() int {
	if w, _, ok := m.outSize(); ok && w > 0 {
		return w
	}
	if w, _ := fallbackTermSizeFromEnv(); w > 0 {
		return w
	}
	return 80
}

// Height returns the terminal height, falling back to $LINES and then 24
func (m *IOManager) Height() int {
	if _, h, ok := m.outSize(); ok && h > 0 {
		return h
	}
	if _, h := fallbackTermSizeFromEnv(); h > 0 {
		return h
	}
	return 24
}

// SupportsColor reports whether ANSI colors should be written
func (m *IOManager) SupportsColor() bool {
	if m.noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	if m.forceColor || os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if goos() == "windows" {
		return m.p.vtEnabled()
	}
	if !m.IsTTY() {
		return false
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

// ColorLevel returns 0 for none, 1 for basic, 2 for 256 colors, and 3 for truecolor.
func (m *IOManager) ColorLevel() int {
	if m.hasForceColorLevel {
		return m.forceColorLevel
	}
	if !m.SupportsColor() {
		return 0
	}

	colorterm := os.Getenv("COLORTERM")
	term := os.Getenv("TERM")
	switch {
	case colorterm == "truecolor" || colorterm == "24bit":
		return 3
	case strings.Contains(term, "truecolor") || strings.Contains(term, "24bit"):
		return 3
	case os.Getenv("TERM_PROGRAM") == "vscode":
		return 3
	case strings.Contains(term, "256color"):
		return 2
	}

	// ask the platform (tput on unix, console mode on windows)
	if level := m.p.colorCapabilityLevel(); level > 0 {
		return level
	}
	return 1
}

// EnableVirtualTerminal tries to enable ANSI processing on Windows consoles
func (m *IOManager) EnableVirtualTerminal() bool { return m.p.enableVirtualTerminal() }

func goos() string {
	if v := os.Getenv("OPTSET_GOOS"); v != "" {
		return v
	}
	return runtime.GOOS
}
