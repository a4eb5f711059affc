package optset

import (
	"reflect"
	"slices"
	"strings"
	"unicode"

	"github.com/dzonerzy/go-optset/internal/optname"
)

// ID identifies a registered option within its OptionSet.
// IDs are assigned by Add starting at 1; the zero ID never names an option.
type ID int

// entry is the type-erased view of one registered option used by the parser
type entry[T any] struct {
	id        ID
	slot      string
	help      string
	valueName string
	short     optname.Name
	long      optname.Name
	flag      bool
	typ       reflect.Type

	// bind snapshots the value parser and validators once the registry is final
	bind func(*Registry) (assignFunc[T], error)
	// assignment is set on the copies a Parser owns, never on declarations
	assignment assignFunc[T]
}

// assignFunc parses raw and returns the deferred assignment
type assignFunc[T any] func(raw string) (func(*T), error)

// displayName is the name used in rule errors: long if present, else short
func (e *entry[T]) displayName() string {
	if !e.long.IsZero() {
		return e.long.String()
	}
	return e.short.String()
}

// OptionBuilder configures one option. Methods record declaration errors on
// the owning OptionSet; they are reported by Build.
type OptionBuilder[T, V any] struct {
	set        *OptionSet[T]
	entry      *entry[T]
	parse      func(string) (V, error)
	validators []func(V) error
	assign     func(*T, V)
}

// Add registers an option whose parsed value of type V is stored by assign.
// slot names the field assign writes to; no two options may share a slot.
// Options whose V is bool are flags.
func Add[T, V any](set *OptionSet[T], slot, help string, assign func(*T, V)) *OptionBuilder[T, V] {
	typ := reflect.TypeFor[V]()
	b := &OptionBuilder[T, V]{set: set, assign: assign}
	b.entry = &entry[T]{
		id:         ID(len(set.entries) + 1),
		slot:       slot,
		help:       help,
		flag:       typ.Kind() == reflect.Bool,
		typ:        typ,
		bind:       b.bind,
	}

	if assign == nil {
		set.fail(configErrorf(slot, "assign function is nil"))
	}
	set.register(b.entry)
	return b
}

// Flag registers a boolean option. Without "=value" its presence sets true.
func Flag[T any](set *OptionSet[T], slot, help string, assign func(*T, bool)) *OptionBuilder[T, bool] {
	return Add(set, slot, help, assign)
}

// ID returns the identifier used to declare rules against this option
func (b *OptionBuilder[T, V]) ID() ID { return b.entry.id }

// Short sets the single-letter name
func (b *OptionBuilder[T, V]) Short(r rune) *OptionBuilder[T, V] {
	name, ok := optname.ParseShort(r)
	if !ok {
		b.set.fail(configErrorf(b.entry.slot, "invalid short name %q", r))
		return b
	}
	if !b.entry.short.IsZero() {
		b.set.fail(configErrorf(b.entry.slot, "short name already set to %q", b.entry.short))
		return b
	}
	if b.set.claim(name, b.entry) {
		b.entry.short = name
	}
	return b
}

// Long sets the multi-letter name, e.g. "dry-run"
func (b *OptionBuilder[T, V]) Long(s string) *OptionBuilder[T, V] {
	name, ok := optname.ParseLong(s)
	if !ok {
		b.set.fail(configErrorf(b.entry.slot, "invalid long name %q", s))
		return b
	}
	if !b.entry.long.IsZero() {
		b.set.fail(configErrorf(b.entry.slot, "long name already set to %q", b.entry.long))
		return b
	}
	if b.set.claim(name, b.entry) {
		b.entry.long = name
	}
	return b
}

// ValueName sets the placeholder shown in help, e.g. FILE
func (b *OptionBuilder[T, V]) ValueName(name string) *OptionBuilder[T, V] {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		b.set.fail(configErrorf(b.entry.slot, "invalid value name %q", name))
		return b
	}
	b.entry.valueName = name
	return b
}

// ParseWith sets the value parser, overriding the registry
func (b *OptionBuilder[T, V]) ParseWith(fn func(string) (V, error)) *OptionBuilder[T, V] {
	if fn == nil {
		b.set.fail(configErrorf(b.entry.slot, "value parser is nil"))
		return b
	}
	b.parse = fn
	return b
}

// Validate adds a check run on the parsed value.
// A failing check is reported like a parser failure.
func (b *OptionBuilder[T, V]) Validate(fn func(V) error) *OptionBuilder[T, V] {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Requires declares that this option is only valid together with ids
func (b *OptionBuilder[T, V]) Requires(ids ...ID) *OptionBuilder[T, V] {
	b.set.Rule(b.entry.id).Requires(ids...)
	return b
}

// Precludes declares that this option cannot be used together with ids
func (b *OptionBuilder[T, V]) Precludes(ids ...ID) *OptionBuilder[T, V] {
	b.set.Rule(b.entry.id).Precludes(ids...)
	return b
}

// bind captures the builder's current parser, validators and assign function.
// Later builder calls do not reach parsers that were already built.
func (b *OptionBuilder[T, V]) bind(r *Registry) (assignFunc[T], error) {
	parse := b.parse
	if parse == nil {
		fn, ok := Lookup[V](r)
		if !ok {
			return nil, configErrorf(b.entry.slot, "no value parser for type %s", b.entry.typ)
		}
		parse = fn
	}
	validators := slices.Clone(b.validators)
	assign := b.assign

	return func(raw string) (func(*T), error) {
		v, err := parse(raw)
		if err != nil {
			return nil, err
		}
		for _, validate := range validators {
			if err := validate(v); err != nil {
				return nil, err
			}
		}
		return func(t *T) { assign(t, v) }, nil
	}, nil
}
