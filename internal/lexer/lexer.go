// Package lexer recognizes one option reference at the front of a token list.
// It knows nothing about registered options; resolving names is the caller's job.
package lexer

import (
	"regexp"
	"unicode/utf8"

	"github.com/dzonerzy/go-optset/internal/intern"
	"github.com/dzonerzy/go-optset/internal/optname"
)

var (
	// 1: short name, 2: adjoined rest
	shortRefRegex = regexp.MustCompile(`^-(` + optname.ShortPattern + `)(.+)?$`)

	// 1: long name, 3: value after "="
	longRefRegex = regexp.MustCompile(`^--(` + optname.LongPattern + `)(=(.*))?$`)
)

// JoinType tells how a value token is attached to the option name
type JoinType int

const (
	// None means there was no token after the option name.
	None JoinType = iota
	// Adjoined is the rest of a short option token: -fvalue, -abc.
	Adjoined
	// Equals is a long option value after '=': --name=value.
	Equals
	// Space is the following token: -f value, --name value.
	Space
)

// String returns the join type name
func (j JoinType) String() string {
	switch j {
	case None:
		return "none"
	case Adjoined:
		return "adjoined"
	case Equals:
		return "equals"
	case Space:
		return "space"
	default:
		return "unknown"
	}
}

// Ref is an option reference recognized at the front of a token list
type Ref struct {
	Name optname.Name
	// Next is the token that may supply the option value.
	// Only meaningful when Join != None.
	Next string
	Join JoinType
}

// HasNext reports whether the reference carries a candidate value token
func (r *Ref) HasNext() bool { return r.Join != None }

// Parse recognizes an option reference in tokens[0].
// It returns the reference and the tokens left after it. When tokens[0] is not
// an option reference (-, --, -3, --bad--name, plain words) it returns nil and
// tokens unchanged. A Space join consumes tokens[1] too; callers that decide the
// option takes no value must push it back.
//
// Parse panics if tokens is empty.
func Parse(tokens []string) (*Ref, []string) {
	if len(tokens) == 0 {
		panic("lexer: Parse called with no tokens")
	}

	if ref, rest := parseShort(tokens); ref != nil {
		return ref, rest
	}
	return parseLong(tokens)
}

func parseShort(tokens []string) (*Ref, []string) {
	match := shortRefRegex.FindStringSubmatchIndex(tokens[0])
	if match == nil {
		return nil, tokens
	}

	token := tokens[0]
	r, _ := utf8.DecodeRuneInString(token[match[2]:match[3]])
	name, ok := optname.Parse(intern.InternRune(r))
	if !ok {
		panic("lexer: short reference matched an invalid name: " + token)
	}

	if match[4] >= 0 {
		return &Ref{Name: name, Next: token[match[4]:match[5]], Join: Adjoined}, tokens[1:]
	}
	return withFollowingToken(name, tokens)
}

func parseLong(tokens []string) (*Ref, []string) {
	match := longRefRegex.FindStringSubmatchIndex(tokens[0])
	if match == nil {
		return nil, tokens
	}

	token := tokens[0]
	name, ok := optname.Parse(intern.Intern(token[match[2]:match[3]]))
	if !ok {
		panic("lexer: long reference matched an invalid name: " + token)
	}

	if match[6] >= 0 {
		return &Ref{Name: name, Next: token[match[6]:match[7]], Join: Equals}, tokens[1:]
	}
	return withFollowingToken(name, tokens)
}

func withFollowingToken(name optname.Name, tokens []string) (*Ref, []string) {
	if len(tokens) > 1 {
		return &Ref{Name: name, Next: tokens[1], Join: Space}, tokens[2:]
	}
	return &Ref{Name: name}, tokens[1:]
}
