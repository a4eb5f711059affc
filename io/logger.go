package optio

import (
	"fmt"
	stdio "io"
	"strings"
	"sync"
	"time"
)

// LogLevel is the severity of a log line
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelSuccess
	LevelWarning
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "SUCCESS", "WARN", "ERROR"}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// LogFormat selects how a line is prefixed
type LogFormat int

const (
	LogFormatSymbols LogFormat = iota // ● ◆ ✓ ▲ ✗
	LogFormatTagged                   // [DEBUG] [INFO] ...
	LogFormatPlain                    // no prefix
	LogFormatCustom                   // user template
)

var formatPrefixes = map[LogFormat][5]string{
	LogFormatSymbols: {"●", "◆", "✓", "▲", "✗"},
	LogFormatTagged:  {"[DEBUG]", "[INFO]", "[SUCCESS]", "[WARN]", "[ERROR]"},
}

// Logger writes leveled, optionally colored lines through an IOManager.
// Lines below the minimum level are dropped. A Logger is safe for concurrent use.
type Logger struct {
	mu           sync.Mutex
	io           *IOManager
	min          LogLevel
	format       LogFormat
	template     string
	prefixes     map[LogLevel]string
	withTime     bool
	timeFormat   string
	errorsStderr bool
	theme        Theme
}

// NewLogger returns a logger at LevelInfo using the symbol format
func NewLogger(io *IOManager) *Logger {
	l := &Logger{
		io:           io,
		min:          LevelInfo,
		errorsStderr: true,
		timeFormat:   "15:04:05",
		theme:        DefaultTheme(io),
	}
	return l.WithFormat(LogFormatSymbols)
}

// WithLevel sets the minimum level that is written
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.min = level
	return l
}

// Enabled reports whether lines at level would be written
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && level >= l.min
}

func (l *Logger) WithFormat(format LogFormat) *Logger {
	l.format = format
	if format == LogFormatCustom {
		return l
	}
	l.prefixes = make(map[LogLevel]string, len(levelNames))
	if p, ok := formatPrefixes[format]; ok {
		for i, s := range p {
			l.prefixes[LogLevel(i)] = s
		}
	}
	return l
}

// WithTemplate switches to LogFormatCustom.
// Recognized fields: {{.Level}}, {{.Time}}, {{.Message}}, {{.Prefix}}
func (l *Logger) WithTemplate(template string) *Logger {
	l.template = template
	l.format = LogFormatCustom
	return l
}

func (l *Logger) SetPrefix(level LogLevel, prefix string) *Logger {
	if l.prefixes == nil {
		l.prefixes = make(map[LogLevel]string)
	}
	l.prefixes[level] = prefix
	return l
}

func (l *Logger) WithTimestamp(enabled bool) *Logger { l.withTime = enabled; return l }
func (l *Logger) WithTimeFormat(format string) *Logger { l.timeFormat = format; return l }
func (l *Logger) WithTheme(theme Theme) *Logger       { l.theme = theme; return l }

// ErrorsToStderr routes warnings and errors to the error writer
func (l *Logger) ErrorsToStderr(enabled bool) *Logger { l.errorsStderr = enabled; return l }

func (l *Logger) Log(level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}
	line := l.render(level, fmt.Sprintf(format, args...))

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.writerFor(level), line)
}

func (l *Logger) render(level LogLevel, msg string) string {
	if l.format == LogFormatCustom && l.template != "" {
		r := strings.NewReplacer(
			"{{.Level}}", level.String(),
			"{{.Message}}", msg,
			"{{.Prefix}}", l.prefixes[level],
			"{{.Time}}", time.Now().Format(l.timeFormat),
		)
		return l.colorize(level, r.Replace(l.template))
	}

	// blank lines pass through untouched
	if strings.TrimSpace(msg) == "" {
		return msg
	}

	parts := make([]string, 0, 3)
	if p := l.prefixes[level]; p != "" {
		parts = append(parts, p)
	}
	if l.withTime {
		stamp := time.Now().Format(l.timeFormat)
		if l.format != LogFormatPlain {
			stamp = "[" + stamp + "]"
		}
		parts = append(parts, stamp)
	}
	parts = append(parts, msg)
	return l.colorize(level, strings.Join(parts, " "))
}

func (l *Logger) colorize(level LogLevel, text string) string {
	if !l.io.SupportsColor() {
		return text
	}
	var c ColorSpec
	switch level {
	case LevelDebug:
		c = l.theme.Debug
	case LevelInfo:
		c = l.theme.Info
	case LevelSuccess:
		c = l.theme.Success
	case LevelWarning:
		c = l.theme.Warning
	case LevelError:
		c = l.theme.Error
	default:
		return text
	}
	return NewStyle().Fg(c).Sprint(l.io, text)
}

func (l *Logger) writerFor(level LogLevel) stdio.Writer {
	if l.errorsStderr && level >= LevelWarning {
		return l.io.Err()
	}
	return l.io.Out()
}

func (l *Logger) Debug(format string, args ...any)   { l.Log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)    { l.Log(LevelInfo, format, args...) }
func (l *Logger) Success(format string, args ...any) { l.Log(LevelSuccess, format, args...) }
func (l *Logger) Warning(format string, args ...any) { l.Log(LevelWarning, format, args...) }
func (l *Logger) Error(format string, args ...any)   { l.Log(LevelError, format, args...) }
