// Package optset parses command-line options into a typed options value.
//
// Options are declared on an OptionSet with Add or Flag, rules between them
// with Requires and Precludes, and Build turns the declarations into an
// immutable Parser:
//
//	type opts struct {
//		Verbose bool
//		Output  string
//	}
//
//	set := optset.New(func() opts { return opts{Output: "-"} })
//	verbose := optset.Flag(set, "verbose", "print more", func(o *opts, v bool) { o.Verbose = v }).
//		Short('v').Long("verbose")
//	optset.Add(set, "output", "write to FILE", func(o *opts, v string) { o.Output = v }).
//		Short('o').Long("output").ValueName("FILE").Requires(verbose.ID())
//
//	parser, err := set.Build()
//	res, err := parser.Parse(os.Args[1:])
package optset

import (
	"errors"
	"strings"

	"github.com/dzonerzy/go-optset/internal/optname"
	optio "github.com/dzonerzy/go-optset/io"
)

// OptionSet collects option and rule declarations for options of type T.
// It is not safe for concurrent use; build it once, then share the Parser.
type OptionSet[T any] struct {
	factory  func() T
	entries  []*entry[T]
	names    map[optname.Name]*entry[T]
	slots    map[string]*entry[T]
	rules    []ruleDecl
	registry *Registry
	config   Config
	logger   *optio.Logger
	errs     []error
}

// New creates an option set. factory returns the defaults every parse starts
// from; a nil factory uses the zero T.
func New[T any](factory func() T) *OptionSet[T] {
	if factory == nil {
		factory = func() T {
			var zero T
			return zero
		}
	}
	return &OptionSet[T]{
		factory: factory,
		names:   make(map[optname.Name]*entry[T]),
		slots:   make(map[string]*entry[T]),
	}
}

// WithParsers replaces the value-parser registry used to resolve options
// declared without ParseWith. The default is DefaultRegistry().
func (s *OptionSet[T]) WithParsers(r *Registry) *OptionSet[T] {
	s.registry = r
	return s
}

// WithConfig sets the configuration used by Parser.Parse
func (s *OptionSet[T]) WithConfig(cfg Config) *OptionSet[T] {
	s.config = cfg
	return s
}

// WithLogger attaches a logger that receives debug traces of each parse
func (s *OptionSet[T]) WithLogger(l *optio.Logger) *OptionSet[T] {
	s.logger = l
	return s
}

// Rule starts a rule declaration for the option with the given ID
func (s *OptionSet[T]) Rule(id ID) *RuleBuilder[T] {
	return &RuleBuilder[T]{set: s, id: id}
}

// RuleBuilder declares rules for one option
type RuleBuilder[T any] struct {
	set *OptionSet[T]
	id  ID
}

// Requires declares that the option may only be given together with ids
func (r *RuleBuilder[T]) Requires(ids ...ID) *RuleBuilder[T] {
	for _, other := range ids {
		r.set.rules = append(r.set.rules, ruleDecl{kind: ruleRequires, subject: r.id, other: other})
	}
	return r
}

// Precludes declares that the option may not be given together with ids
func (r *RuleBuilder[T]) Precludes(ids ...ID) *RuleBuilder[T] {
	for _, other := range ids {
		r.set.rules = append(r.set.rules, ruleDecl{kind: rulePrecludes, subject: r.id, other: other})
	}
	return r
}

func (s *OptionSet[T]) fail(err error) {
	s.errs = append(s.errs, err)
}

func (s *OptionSet[T]) register(e *entry[T]) {
	s.entries = append(s.entries, e)

	if strings.TrimSpace(e.slot) == "" {
		s.fail(configErrorf("", "option %d has an empty slot", e.id))
	} else if _, dup := s.slots[e.slot]; dup {
		s.fail(configErrorf(e.slot, "slot is already used by another option"))
	} else {
		s.slots[e.slot] = e
	}

	if strings.TrimSpace(e.help) == "" {
		s.fail(configErrorf(e.slot, "help text is empty"))
	}
}

// claim reserves name for e, reporting duplicates
func (s *OptionSet[T]) claim(name optname.Name, e *entry[T]) bool {
	if owner, dup := s.names[name]; dup {
		s.fail(configErrorf(e.slot, "%s already refers to option %q", name.Flag(), owner.slot))
		return false
	}
	s.names[name] = e
	return true
}

func (s *OptionSet[T]) nameOf(id ID) string {
	if id < 1 || int(id) > len(s.entries) {
		return ""
	}
	return s.entries[id-1].displayName()
}

// Build validates every declaration and returns an immutable parser.
// All configuration problems are reported together, joined with errors.Join;
// each is a *ConfigError.
func (s *OptionSet[T]) Build() (*Parser[T], error) {
	errs := append([]error(nil), s.errs...)

	registry := s.registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	// the parser owns copies, so declarations made after Build do not reach it
	entries := make([]*entry[T], 0, len(s.entries))
	for _, e := range s.entries {
		if e.short.IsZero() && e.long.IsZero() {
			errs = append(errs, configErrorf(e.slot, "option needs a short or a long name"))
		}
		built := *e
		assignment, err := e.bind(registry)
		if err != nil {
			errs = append(errs, err)
		}
		built.assignment = assignment
		if built.valueName == "" {
			built.valueName = defaultValueName(e)
		}
		entries = append(entries, &built)
	}

	rules, err := newRuleSet(s.rules, len(s.entries), s.nameOf)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if s.logger.Enabled(optio.LevelDebug) {
		for _, d := range s.rules {
			s.logger.Debug("rule %s", d)
		}
		s.logger.Debug("built option set: %d option(s), %d requirement(s), %d preclusion(s)",
			len(s.entries), rules.requirements.Len(), len(rules.preclusions))
	}

	return &Parser[T]{
		factory: s.factory,
		entries: entries,
		engine:  newEngine(entries, s.logger),
		rules:   rules,
		config:  s.config,
	}, nil
}

// MustBuild is like Build but panics on configuration errors
func (s *OptionSet[T]) MustBuild() *Parser[T] {
	p, err := s.Build()
	if err != nil {
		panic(err)
	}
	return p
}

func defaultValueName[T any](e *entry[T]) string {
	if e.flag {
		return ""
	}
	switch e.typ.String() {
	case "int", "int64", "uint":
		return "INT"
	case "float64":
		return "NUMBER"
	case "time.Duration":
		return "DURATION"
	case "[]string":
		return "LIST"
	default:
		return "VALUE"
	}
}
