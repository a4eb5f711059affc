// Package optname classifies option names as short (-v) or long (--verbose).
// Used by the lexer to recognize option references and by optset for registration
package optname

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

const (
	// ShortPattern matches a single Unicode letter.
	ShortPattern = `\p{L}`

	// LongPattern matches hyphen-separated groups of Unicode letters.
	LongPattern = `\p{L}+(?:-\p{L}+)*`
)

var longNameRegex = regexp.MustCompile(`^` + LongPattern + `$`)

// Kind tells short names from long names
type Kind int

const (
	Short Kind = iota + 1
	Long
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case Short:
		return "short"
	case Long:
		return "long"
	default:
		return "invalid"
	}
}

// Name is a validated option name. The zero value is not a valid name.
// Names are comparable and can be used as map keys.
type Name struct {
	kind Kind
	text string
}

// Parse classifies input as a short or long name.
// A single letter is always short; anything else must match LongPattern.
func Parse(input string) (Name, bool) {
	if input == "" {
		return Name{}, false
	}

	if r, size := utf8.DecodeRuneInString(input); size == len(input) {
		if r != utf8.RuneError && unicode.IsLetter(r) {
			return Name{kind: Short, text: input}, true
		}
		return Name{}, false
	}

	if longNameRegex.MatchString(input) {
		return Name{kind: Long, text: input}, true
	}
	return Name{}, false
}

// ParseShort parses a rune as a short name
func ParseShort(r rune) (Name, bool) {
	n, ok := Parse(string(r))
	if !ok || n.kind != Short {
		return Name{}, false
	}
	return n, true
}

// ParseLong parses s as a long name, rejecting short ones
func ParseLong(s string) (Name, bool) {
	n, ok := Parse(s)
	if !ok || n.kind != Long {
		return Name{}, false
	}
	return n, true
}

// MustShort is like ParseShort but panics on invalid input.
func MustShort(r rune) Name {
	n, ok := ParseShort(r)
	if !ok {
		panic(fmt.Sprintf("optname: invalid short name %q", r))
	}
	return n
}

// MustLong is like ParseLong but panics on invalid input.
func MustLong(s string) Name {
	n, ok := ParseLong(s)
	if !ok {
		panic(fmt.Sprintf("optname: invalid long name %q", s))
	}
	return n
}

// Kind returns the name kind, 0 for the zero Name
func (n Name) Kind() Kind { return n.kind }

// IsShort reports whether n is a short name
func (n Name) IsShort() bool { return n.kind == Short }

// IsLong reports whether n is a long name
func (n Name) IsLong() bool { return n.kind == Long }

// IsZero reports whether n is the zero Name
func (n Name) IsZero() bool { return n.kind == 0 }

// String returns the literal name text
func (n Name) String() string { return n.text }

// Flag returns the name as typed on a command line: -v or --verbose
func (n Name) Flag() string {
	switch n.kind {
	case Short:
		return "-" + n.text
	case Long:
		return "--" + n.text
	default:
		return ""
	}
}
