package optset

import (
	"slices"

	"github.com/dzonerzy/go-optset/internal/lexer"
	"github.com/dzonerzy/go-optset/internal/optname"
	"github.com/dzonerzy/go-optset/internal/pool"
	optio "github.com/dzonerzy/go-optset/io"
)

// Config controls how tokens are split into options and arguments
type Config struct {
	// PosixOptionOrder stops option scanning at the first argument.
	// Everything from there on is an argument, except the first "--".
	PosixOptionOrder bool
}

// flagValue is the value given to a flag that appears without "=value"
const flagValue = "true"

// endOfOptions separates options from arguments
const endOfOptions = "--"

// assignments holds deferred assignments keyed by option.
// order records first occurrences; a repeated option replaces its action.
type assignments[T any] struct {
	order   []ID
	actions map[ID]func(*T)
}

func newAssignments[T any]() *assignments[T] {
	return &assignments[T]{actions: make(map[ID]func(*T))}
}

func (a *assignments[T]) set(id ID, action func(*T)) {
	if _, exists := a.actions[id]; !exists {
		a.order = append(a.order, id)
	}
	a.actions[id] = action
}

func (a *assignments[T]) has(id ID) bool {
	_, ok := a.actions[id]
	return ok
}

func (a *assignments[T]) apply(t *T) {
	for _, id := range a.order {
		a.actions[id](t)
	}
}

// engine walks a token list and turns option references into assignments.
// It holds only read-only state after Build, so one engine serves concurrent parses.
type engine[T any] struct {
	byName    map[optname.Name]*entry[T]
	longNames []string
	logger    *optio.Logger
}

func newEngine[T any](entries []*entry[T], logger *optio.Logger) *engine[T] {
	e := &engine[T]{byName: make(map[optname.Name]*entry[T], 2*len(entries)), logger: logger}
	for _, ent := range entries {
		if !ent.short.IsZero() {
			e.byName[ent.short] = ent
		}
		if !ent.long.IsZero() {
			e.byName[ent.long] = ent
			e.longNames = append(e.longNames, ent.long.String())
		}
	}
	return e
}

func (e *engine[T]) debug(format string, args ...any) {
	if e.logger.Enabled(optio.LevelDebug) {
		e.logger.Debug(format, args...)
	}
}

// parse consumes tokens and returns the assignments and positional arguments,
// or the first error. tokens is not modified.
func (e *engine[T]) parse(cfg Config, tokens []string) (*assignments[T], []string, error) {
	result := newAssignments[T]()
	args := make([]string, 0, len(tokens))

	// work stack with the next token on top, so push-back is an append
	stack := pool.GetTokens()
	defer pool.PutTokens(stack)
	for i := len(tokens) - 1; i >= 0; i-- {
		*stack = append(*stack, tokens[i])
	}

	var window [2]string
	for len(*stack) > 0 {
		s := *stack
		n := min(len(s), 2)
		front := window[:n]
		for i := range front {
			front[i] = s[len(s)-1-i]
		}

		ref, rest := lexer.Parse(front)
		if ref == nil {
			var done bool
			args, done = e.consumeArguments(cfg, stack, args)
			if done {
				break
			}
			continue
		}
		*stack = s[:len(s)-(n-len(rest))]

		opt, ok := e.byName[ref.Name]
		if !ok {
			return nil, nil, &ParseError{
				Type:       ErrorTypeUnknownOption,
				Option:     ref.Name.String(),
				Suggestion: suggest(ref.Name.String(), e.longNames),
			}
		}

		var value string
		switch {
		case opt.flag && ref.Join != lexer.Equals:
			value = flagValue
			switch ref.Join {
			case lexer.Adjoined:
				// -abc with a flag: continue with -bc
				*stack = append(*stack, "-"+ref.Next)
			case lexer.Space:
				*stack = append(*stack, ref.Next)
			}
		case ref.HasNext():
			value = ref.Next
		default:
			return nil, nil, &ParseError{Type: ErrorTypeMissingValue, Option: ref.Name.String()}
		}

		action, err := opt.assignment(value)
		if err != nil {
			return nil, nil, &ParseError{
				Type:    ErrorTypeValueFormat,
				Option:  ref.Name.String(),
				Value:   value,
				Message: err.Error(),
				Cause:   err,
			}
		}

		e.debug("option %s = %q (%s)", ref.Name.Flag(), value, ref.Join)
		result.set(opt.id, action)
	}

	return result, args, nil
}

// consumeArguments handles a token that is not an option reference.
// It reports true when option scanning is over.
func (e *engine[T]) consumeArguments(cfg Config, stack *[]string, args []string) ([]string, bool) {
	s := *stack
	top := s[len(s)-1]

	switch {
	case cfg.PosixOptionOrder:
		// everything left is an argument; only the first "--" is dropped
		remaining := make([]string, 0, len(s))
		for i := len(s) - 1; i >= 0; i-- {
			remaining = append(remaining, s[i])
		}
		if i := slices.Index(remaining, endOfOptions); i >= 0 {
			remaining = slices.Delete(remaining, i, i+1)
		}
		*stack = s[:0]
		e.debug("option scanning stopped at %q, %d argument(s)", top, len(remaining))
		return append(args, remaining...), true

	case top == endOfOptions:
		for i := len(s) - 2; i >= 0; i-- {
			args = append(args, s[i])
		}
		*stack = s[:0]
		e.debug("end of options, %d argument(s)", len(s)-1)
		return args, true

	default:
		*stack = s[:len(s)-1]
		e.debug("argument %q", top)
		return append(args, top), false
	}
}
