// Package intern provides string interning for option names
// Used by the lexer so repeated option references share one string
package intern

import (
	"strings"
	"sync"
)

// StringInterner provides thread-safe string interning
type StringInterner struct {
	strings map[string]string
	mutex   sync.RWMutex
	limit   int
}

// NewStringInterner creates a new string interner with optional pre-allocated capacity.
// Once limit entries are held, new strings are returned as-is instead of being stored.
func NewStringInterner(capacity, limit int) *StringInterner {
	if capacity <= 0 {
		capacity = 64 // Default capacity
	}
	return &StringInterner{
		strings: make(map[string]string, capacity),
		limit:   limit,
	}
}

// Intern interns a string, returning the canonical version
func (si *StringInterner) Intern(s string) string {
	// Fast path: read lock for common case
	si.mutex.RLock()
	if interned, exists := si.strings[s]; exists {
		si.mutex.RUnlock()
		return interned
	}
	si.mutex.RUnlock()

	si.mutex.Lock()
	defer si.mutex.Unlock()

	// Double-check after acquiring write lock
	if interned, exists := si.strings[s]; exists {
		return interned
	}

	// Tokens come from user input, don't let them grow the table forever
	if si.limit > 0 && len(si.strings) >= si.limit {
		return s
	}

	// Clone so a name sliced out of a long token doesn't pin the token
	c := strings.Clone(s)
	si.strings[c] = c
	return c
}

// InternRune interns a single rune as string.
// ASCII letters come from a pre-allocated table.
func (si *StringInterner) InternRune(r rune) string {
	if r >= 'a' && r <= 'z' {
		return singleCharStrings[r-'a']
	}
	if r >= 'A' && r <= 'Z' {
		return singleCharStrings[26+r-'A']
	}
	return si.Intern(string(r))
}

// PreIntern adds names up front, ignoring the limit
func (si *StringInterner) PreIntern(names []string) {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	for _, s := range names {
		si.strings[s] = s
	}
}

// Stats returns the number of interned strings for monitoring.
func (si *StringInterner) Stats() int {
	si.mutex.RLock()
	defer si.mutex.RUnlock()
	return len(si.strings)
}

// Clear removes all interned strings (useful for testing)
func (si *StringInterner) Clear() {
	si.mutex.Lock()
	defer si.mutex.Unlock()

	clear(si.strings)
}

// a-z (0-25), A-Z (26-51)
var singleCharStrings = [52]string{
	"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
	"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z",
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
}

// CommonOptionNames contains frequently used long option names for pre-interning
var CommonOptionNames = []string{
	"help", "version", "verbose", "quiet", "config", "output",
	"input", "force", "debug", "port", "host", "timeout", "dry-run",
}

// GlobalInterner is the process-wide interner used by the lexer.
var GlobalInterner = newGlobal()

func newGlobal() *StringInterner {
	si := NewStringInterner(128, 4096)
	si.PreIntern(CommonOptionNames)
	return si
}

// Intern interns a string using the global interner
func Intern(s string) string {
	return GlobalInterner.Intern(s)
}

// InternRune interns a single rune using the global interner
func InternRune(r rune) string {
	return GlobalInterner.InternRune(r)
}
