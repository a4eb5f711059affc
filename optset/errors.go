package optset

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-optset/internal/fuzzy"
	optio "github.com/dzonerzy/go-optset/io"
)

// ErrorType represents the category of a parse error.
// Categories drive suggestion logic and exit-code mapping (via ExitCodeManager).
type ErrorType string

const (
	ErrorTypeUnknownOption   ErrorType = "unknown_option"
	ErrorTypeMissingValue    ErrorType = "missing_value"
	ErrorTypeValueFormat     ErrorType = "value_format"
	ErrorTypeMissingRequired ErrorType = "missing_required"
	ErrorTypePrecluded       ErrorType = "precluded"
)

// ParseError is the single terminal error of a failed parse.
// Option holds the bare name (no dashes) of the option the error is about.
type ParseError struct {
	Type   ErrorType
	Option string

	// ErrorTypeValueFormat
	Value   string
	Message string

	// ErrorTypeMissingRequired
	RequiredBy string

	// ErrorTypePrecluded
	PrecludedBy string

	// ErrorTypeUnknownOption, may be empty
	Suggestion string

	Cause error
}

func (e *ParseError) Error() string {
	switch e.Type {
	case ErrorTypeUnknownOption:
		return "unknown option " + dashed(e.Option)
	case ErrorTypeMissingValue:
		return "option " + dashed(e.Option) + " requires a value"
	case ErrorTypeValueFormat:
		return fmt.Sprintf("invalid value %q for option %s: %s", e.Value, dashed(e.Option), e.Message)
	case ErrorTypeMissingRequired:
		return "option " + dashed(e.Option) + " is required by " + dashed(e.RequiredBy)
	case ErrorTypePrecluded:
		return "option " + dashed(e.Option) + " cannot be used with " + dashed(e.PrecludedBy)
	default:
		return "parse error: " + e.Option
	}
}

// Unwrap returns the value parser's error for ErrorTypeValueFormat
func (e *ParseError) Unwrap() error { return e.Cause }

// Is matches another *ParseError with the same Type and Option,
// so errors.Is(err, &ParseError{Type: ErrorTypeUnknownOption, Option: "z"}) works.
// Empty fields in target match anything.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return (t.Type == "" || t.Type == e.Type) && (t.Option == "" || t.Option == e.Option)
}

// dashed renders a bare option name the way it is typed
func dashed(name string) string {
	if name == "" {
		return ""
	}
	if utf8.RuneCountInString(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// ConfigError reports an invalid option set declaration
type ConfigError struct {
	Option  string // slot or name the error is about, may be empty
	Message string
}

func (e *ConfigError) Error() string {
	if e.Option == "" {
		return "optset: " + e.Message
	}
	return "optset: " + e.Option + ": " + e.Message
}

func configErrorf(option, format string, args ...any) *ConfigError {
	return &ConfigError{Option: option, Message: fmt.Sprintf(format, args...)}
}

// AsParseError is errors.As for *ParseError
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// suggest fills in a "did you mean" candidate for unknown long options
func suggest(name string, longNames []string) string {
	if utf8.RuneCountInString(name) < 2 {
		return ""
	}
	return fuzzy.FindBestOption(name, longNames)
}

// ErrorFormatter renders parse errors for terminals
type ErrorFormatter struct {
	io          *optio.IOManager
	suggestions bool
	usage       func() string
}

// NewErrorFormatter creates a formatter writing through io.
// A nil io uses process stdio.
func NewErrorFormatter(io *optio.IOManager) *ErrorFormatter {
	if io == nil {
		io = optio.New()
	}
	return &ErrorFormatter{io: io, suggestions: true}
}

// Suggestions enables or disables "did you mean" lines
func (f *ErrorFormatter) Suggestions(enabled bool) *ErrorFormatter {
	f.suggestions = enabled
	return f
}

// WithUsage appends usage text after the error, e.g. a Parser's Help
func (f *ErrorFormatter) WithUsage(usage func() string) *ErrorFormatter {
	f.usage = usage
	return f
}

// Format renders err with color when the terminal supports it
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	theme := optio.DefaultTheme(f.io)
	var b strings.Builder
	b.WriteString(optio.NewStyle().Fg(theme.Error).Bold().Sprint(f.io, "Error:"))
	b.WriteString(" ")
	b.WriteString(err.Error())

	if pe, ok := AsParseError(err); ok && f.suggestions && pe.Suggestion != "" {
		b.WriteString("\n")
		b.WriteString(optio.NewStyle().Fg(theme.Info).Sprint(f.io, "Did you mean '"+dashed(pe.Suggestion)+"'?"))
	}

	if f.usage != nil {
		b.WriteString("\n\n")
		b.WriteString(f.usage())
	}
	return b.String()
}

// Print writes the formatted error to the error stream
func (f *ErrorFormatter) Print(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(f.io.Err(), f.Format(err))
}
