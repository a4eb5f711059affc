package optset

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Registry maps value types to string parsers.
// Lookups are by exact type identity; there is no conversion between types.
type Registry struct {
	mu      sync.RWMutex
	parsers map[reflect.Type]any
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[reflect.Type]any)}
}

// DefaultRegistry returns a new registry holding parsers for
// string, bool, int, int64, uint, float64, time.Duration and []string.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	Register(r, func(s string) (string, error) { return s, nil })
	Register(r, ParseBool)
	Register(r, ParseInt)
	Register(r, ParseInt64)
	Register(r, ParseUint)
	Register(r, ParseFloat)
	Register(r, ParseDuration)
	Register(r, ParseStringSlice)
	return r
}

// Register adds or replaces the parser for V and returns r
func Register[V any](r *Registry, fn func(string) (V, error)) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.parsers == nil {
		r.parsers = make(map[reflect.Type]any)
	}
	r.parsers[reflect.TypeFor[V]()] = fn
	return r
}

// Lookup returns the parser registered for V
func Lookup[V any](r *Registry) (func(string) (V, error), bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.parsers[reflect.TypeFor[V]()].(func(string) (V, error))
	return fn, ok
}

// Len returns the number of registered types
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.parsers)
}

var (
	errEmptyValue = errors.New("empty value")
	errOverflow   = errors.New("integer overflow")
)

// ParseBool accepts true/false, t/f, 1/0, yes/no and on/off, ignoring case
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "t", "1", "yes", "y", "on":
		return true, nil
	case "false", "f", "0", "no", "n", "off":
		return false, nil
	}
	return false, errors.New("invalid boolean " + strconv.Quote(s))
}

// ParseInt parses decimal and 0x-prefixed hex integers with an optional sign
func ParseInt(s string) (int, error) {
	n, err := ParseInt64(s)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, errOverflow
	}
	return int(n), nil
}

// ParseInt64 is ParseInt over the full 64-bit range on every platform
func ParseInt64(s string) (int64, error) {
	if s == "" {
		return 0, errEmptyValue
	}

	negative := false
	rest := s
	switch s[0] {
	case '-':
		negative = true
		rest = s[1:]
	case '+':
		rest = s[1:]
	}
	if rest == "" {
		return 0, errors.New("invalid integer " + strconv.Quote(s))
	}

	// the negative range is one larger than the positive one
	limit := uint64(math.MaxInt64)
	if negative {
		limit++
	}
	mag, err := parseMagnitude(rest, limit)
	if err != nil {
		return 0, err
	}

	if negative {
		return -int64(mag), nil
	}
	return int64(mag), nil
}

// ParseUint is ParseInt without a sign
func ParseUint(s string) (uint, error) {
	if strings.HasPrefix(s, "-") {
		return 0, errors.New("negative value " + strconv.Quote(s))
	}
	n, err := parseMagnitude(strings.TrimPrefix(s, "+"), math.MaxUint)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// parseMagnitude parses an unsigned decimal or 0x hex number no larger than limit
func parseMagnitude(s string, limit uint64) (uint64, error) {
	if len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return parseHex(s[2:], limit)
	}
	return parseDecimal(s, limit)
}

// parseDecimal uses ASCII math: '8' - '0' = 8
func parseDecimal(s string, limit uint64) (uint64, error) {
	if s == "" {
		return 0, errEmptyValue
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errors.New("invalid decimal character " + strconv.QuoteRune(rune(c)))
		}
		digit := uint64(c - '0')
		if n > (limit-digit)/10 {
			return 0, errOverflow
		}
		n = n*10 + digit
	}
	return n, nil
}

func parseHex(s string, limit uint64) (uint64, error) {
	if s == "" {
		return 0, errors.New("empty hex value")
	}
	var n uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var digit uint64
		switch {
		case c >= '0' && c <= '9':
			digit = uint64(c - '0')
		case c >= 'A' && c <= 'F':
			digit = uint64(c - 'A' + 10)
		case c >= 'a' && c <= 'f':
			digit = uint64(c - 'a' + 10)
		default:
			return 0, errors.New("invalid hex character " + strconv.QuoteRune(rune(c)))
		}
		if n > (limit-digit)/16 {
			return 0, errOverflow
		}
		n = n*16 + digit
	}
	return n, nil
}

// ParseFloat parses a 64-bit float
func ParseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// strip the "strconv.ParseFloat: " noise, the option name is added by the caller
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, errors.New(numErr.Err.Error() + " " + strconv.Quote(s))
		}
		return 0, err
	}
	return f, nil
}

// ParseStringSlice splits on commas, trimming space and dropping empty items
func ParseStringSlice(s string) ([]string, error) {
	out := make([]string, 0, strings.Count(s, ",")+1)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out, nil
}

// ParseDuration parses durations in several forms:
// "00:30" (30s), "01:30:15" (1h30m15s), "1h30m", "3 sec", "2d", "1w", "1M", "1Y".
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("empty duration")
	}

	if colons := strings.Count(s, ":"); colons > 0 {
		return parseColonDuration(s, colons)
	}

	if d, ok, err := parseExtendedDuration(s); ok {
		return d, err
	}

	// Go syntax covers fractions and signs: "1.5h", "-30s"
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	return parseStandardDuration(s)
}

func durationOverflow(s string) error {
	return errors.New("duration out of range " + strconv.Quote(s))
}

// scaleDuration returns n units, reporting false when the result does not fit
func scaleDuration(n uint64, unit time.Duration) (time.Duration, bool) {
	if n > uint64(math.MaxInt64/unit) {
		return 0, false
	}
	return time.Duration(n) * unit, true
}

// addDuration adds two non-negative durations, reporting false on overflow
func addDuration(a, b time.Duration) (time.Duration, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

// parseColonDuration parses "MM:SS" or "HH:MM:SS"
func parseColonDuration(s string, colons int) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if colons > 2 {
		return 0, errors.New("too many colons in duration " + strconv.Quote(s))
	}

	units := []time.Duration{time.Minute, time.Second}
	if len(parts) == 3 {
		units = []time.Duration{time.Hour, time.Minute, time.Second}
	}

	var total time.Duration
	for i, p := range parts {
		n, err := parseDecimal(p, math.MaxInt64)
		if err != nil {
			if errors.Is(err, errOverflow) {
				return 0, durationOverflow(s)
			}
			return 0, errors.New("invalid duration " + strconv.Quote(s))
		}
		d, ok := scaleDuration(n, units[i])
		if ok {
			total, ok = addDuration(total, d)
		}
		if !ok {
			return 0, durationOverflow(s)
		}
	}
	return total, nil
}

// parseExtendedDuration parses "1d", "1w", "1M" and "1Y".
// ok is false when s is not in this form; err is set when it is but does not fit.
func parseExtendedDuration(s string) (d time.Duration, ok bool, err error) {
	if len(s) < 2 {
		return 0, false, nil
	}

	var multiplier time.Duration
	switch s[len(s)-1] {
	case 'd', 'D':
		multiplier = 24 * time.Hour
	case 'w', 'W':
		multiplier = 7 * 24 * time.Hour
	case 'M':
		// lowercase m is minutes, handled by the standard form
		multiplier = 30 * 24 * time.Hour
	case 'y', 'Y':
		multiplier = 365 * 24 * time.Hour
	default:
		return 0, false, nil
	}

	n, err := parseDecimal(s[:len(s)-1], math.MaxInt64)
	if errors.Is(err, errOverflow) {
		return 0, true, durationOverflow(s)
	}
	if err != nil {
		return 0, false, nil
	}
	if d, ok = scaleDuration(n, multiplier); !ok {
		return 0, true, durationOverflow(s)
	}
	return d, true, nil
}

// parseStandardDuration parses "1h30m15s" and "3 sec" forms
func parseStandardDuration(s string) (time.Duration, error) {
	var (
		result    time.Duration
		current   uint64
		hasNumber bool
	)

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, err := parseDecimal(s[i:j], math.MaxInt64)
			if err != nil {
				return 0, durationOverflow(s)
			}
			current, hasNumber, i = n, true, j
		case hasNumber:
			unit, consumed := parseTimeUnit(s[i:])
			if consumed == 0 {
				return 0, errors.New("invalid duration unit in " + strconv.Quote(s))
			}
			d, ok := scaleDuration(current, unit)
			if ok {
				result, ok = addDuration(result, d)
			}
			if !ok {
				return 0, durationOverflow(s)
			}
			i += consumed
			hasNumber = false
		default:
			return 0, errors.New("number expected before unit in " + strconv.Quote(s))
		}
	}

	if hasNumber {
		return 0, errors.New("missing unit in duration " + strconv.Quote(s))
	}
	return result, nil
}

// timeUnits is ordered so longer spellings are tried first
var timeUnits = []struct {
	name string
	unit time.Duration
}{
	{"nanoseconds", time.Nanosecond}, {"ns", time.Nanosecond},
	{"microseconds", time.Microsecond}, {"us", time.Microsecond}, {"µs", time.Microsecond}, {"μs", time.Microsecond},
	{"milliseconds", time.Millisecond}, {"ms", time.Millisecond},
	{"seconds", time.Second}, {"second", time.Second}, {"secs", time.Second}, {"sec", time.Second}, {"s", time.Second},
	{"minutes", time.Minute}, {"minute", time.Minute}, {"mins", time.Minute}, {"min", time.Minute}, {"m", time.Minute},
	{"hours", time.Hour}, {"hour", time.Hour}, {"h", time.Hour},
}

// parseTimeUnit returns the unit at the start of s and the bytes consumed
func parseTimeUnit(s string) (time.Duration, int) {
	lower := strings.ToLower(s)
	for _, u := range timeUnits {
		if strings.HasPrefix(lower, u.name) {
			return u.unit, len(u.name)
		}
	}
	return 0, 0
}
