package optset

// Parser parses token lists against a built OptionSet.
// A Parser is immutable and safe for concurrent use.
type Parser[T any] struct {
	factory func() T
	entries []*entry[T]
	engine  *engine[T]
	rules   *ruleSet
	config  Config
}

// Result is a successful parse
type Result[T any] struct {
	Options T
	// Args holds the tokens that were not options, in input order
	Args []string
}

// Parse parses args (without the program name) using the set's Config
func (p *Parser[T]) Parse(args []string) (*Result[T], error) {
	return p.ParseWith(args, p.config)
}

// ParseWith parses args using cfg.
// On failure it returns a *ParseError and no result.
func (p *Parser[T]) ParseWith(args []string, cfg Config) (*Result[T], error) {
	assigned, positional, err := p.engine.parse(cfg, args)
	if err != nil {
		return nil, err
	}

	if v := p.rules.violation(assigned.has, p.nameOf); v != nil {
		return nil, v
	}

	opts := p.factory()
	assigned.apply(&opts)

	return &Result[T]{Options: opts, Args: positional}, nil
}

// ID returns the ID of the option with the given slot
func (p *Parser[T]) ID(slot string) (ID, bool) {
	for _, e := range p.entries {
		if e.slot == slot {
			return e.id, true
		}
	}
	return 0, false
}

func (p *Parser[T]) nameOf(id ID) string {
	return p.entries[id-1].displayName()
}
