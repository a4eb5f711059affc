//nolint:testpackage // using package name 'optset' to reach the rule set
package optset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ruleOpts struct {
	Alpha, B, Gamma, X, Y bool
}

// alpha requires b, b requires gamma, x precludes y
func newRuleParser(t *testing.T) *Parser[ruleOpts] {
	t.Helper()
	set := New[ruleOpts](nil)
	alpha := Flag(set, "alpha", "alpha", func(o *ruleOpts, v bool) { o.Alpha = v }).Long("alpha")
	b := Flag(set, "b", "b", func(o *ruleOpts, v bool) { o.B = v }).Short('b')
	gamma := Flag(set, "gamma", "gamma", func(o *ruleOpts, v bool) { o.Gamma = v }).Long("gamma")
	x := Flag(set, "x", "x", func(o *ruleOpts, v bool) { o.X = v }).Short('x')
	y := Flag(set, "y", "y", func(o *ruleOpts, v bool) { o.Y = v }).Short('y')

	alpha.Requires(b.ID())
	set.Rule(b.ID()).Requires(gamma.ID())
	x.Precludes(y.ID())

	p, err := set.Build()
	require.NoError(t, err)
	return p
}

func TestRulesSatisfied(t *testing.T) {
	p := newRuleParser(t)
	for _, tokens := range [][]string{
		nil,
		{"--gamma"},
		{"-b", "--gamma"},
		{"--alpha", "-b", "--gamma"},
		{"-x"},
		{"-y", "--gamma"},
	} {
		_, err := p.Parse(tokens)
		assert.NoError(t, err, "tokens %q", tokens)
	}
}

func TestRuleViolations(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    ParseError
		message string
	}{
		{
			"direct requirement",
			[]string{"--alpha"},
			ParseError{Type: ErrorTypeMissingRequired, Option: "b", RequiredBy: "alpha"},
			"option -b is required by --alpha",
		},
		{
			"transitive requirement reported in graph order",
			[]string{"--alpha", "-b"},
			ParseError{Type: ErrorTypeMissingRequired, Option: "gamma", RequiredBy: "b"},
			"option --gamma is required by -b",
		},
		{
			"implied requirement",
			[]string{"--alpha", "--gamma"},
			ParseError{Type: ErrorTypeMissingRequired, Option: "b", RequiredBy: "alpha"},
			"option -b is required by --alpha",
		},
		{
			"explicit false still counts as given",
			[]string{"--alpha=false"},
			ParseError{Type: ErrorTypeMissingRequired, Option: "b", RequiredBy: "alpha"},
			"option -b is required by --alpha",
		},
		{
			"preclusion",
			[]string{"-y", "-x"},
			ParseError{Type: ErrorTypePrecluded, Option: "y", PrecludedBy: "x"},
			"option -y cannot be used with -x",
		},
		{
			"requirements before preclusions",
			[]string{"-xy", "-b"},
			ParseError{Type: ErrorTypeMissingRequired, Option: "gamma", RequiredBy: "b"},
			"option --gamma is required by -b",
		},
	}

	p := newRuleParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Parse(tt.tokens)
			assert.Nil(t, res)
			pe, ok := AsParseError(err)
			require.True(t, ok, "want *ParseError, got %v", err)
			assert.Equal(t, tt.want, *pe)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestRuleCycleIsAllowed(t *testing.T) {
	set := New[ruleOpts](nil)
	x := Flag(set, "x", "x", func(o *ruleOpts, v bool) { o.X = v }).Short('x')
	y := Flag(set, "y", "y", func(o *ruleOpts, v bool) { o.Y = v }).Short('y')
	x.Requires(y.ID())
	y.Requires(x.ID())
	p := set.MustBuild()

	res, err := p.Parse([]string{"-xy"})
	require.NoError(t, err)
	assert.Equal(t, ruleOpts{X: true, Y: true}, res.Options)

	_, err = p.Parse([]string{"-y"})
	assert.True(t, errors.Is(err, &ParseError{Type: ErrorTypeMissingRequired, Option: "x"}))
}

func TestRuleContradictions(t *testing.T) {
	tests := []struct {
		name  string
		build func(set *OptionSet[ruleOpts], a, b, c ID)
	}{
		{"direct", func(set *OptionSet[ruleOpts], a, b, _ ID) {
			set.Rule(a).Requires(b).Precludes(b)
		}},
		{"reverse direction", func(set *OptionSet[ruleOpts], a, b, _ ID) {
			set.Rule(a).Requires(b)
			set.Rule(b).Precludes(a)
		}},
		{"through the closure", func(set *OptionSet[ruleOpts], a, b, c ID) {
			set.Rule(a).Requires(b)
			set.Rule(b).Requires(c)
			set.Rule(c).Precludes(a)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := New[ruleOpts](nil)
			a := Flag(set, "alpha", "alpha", func(o *ruleOpts, v bool) { o.Alpha = v }).Long("alpha")
			b := Flag(set, "b", "b", func(o *ruleOpts, v bool) { o.B = v }).Short('b')
			c := Flag(set, "gamma", "gamma", func(o *ruleOpts, v bool) { o.Gamma = v }).Long("gamma")
			tt.build(set, a.ID(), b.ID(), c.ID())

			p, err := set.Build()
			assert.Nil(t, p)
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "want *ConfigError, got %v", err)
			assert.Contains(t, ce.Message, "both requires and precludes")
		})
	}
}

func TestRuleDeclarationErrors(t *testing.T) {
	set := New[ruleOpts](nil)
	x := Flag(set, "x", "x", func(o *ruleOpts, v bool) { o.X = v }).Short('x')
	x.Requires(x.ID())
	x.Precludes(x.ID())
	set.Rule(42).Requires(x.ID())
	x.Precludes(0)

	_, err := set.Build()
	require.Error(t, err)
	msgs := configMessages(t, err)
	assert.Equal(t, []string{
		"optset: x: option cannot require itself",
		"optset: x: option cannot preclude itself",
		"optset: rule references unknown option id 42",
		"optset: rule references unknown option id 0",
	}, msgs)
}

func TestRuleDuplicatesAreIgnored(t *testing.T) {
	set := New[ruleOpts](nil)
	x := Flag(set, "x", "x", func(o *ruleOpts, v bool) { o.X = v }).Short('x')
	y := Flag(set, "y", "y", func(o *ruleOpts, v bool) { o.Y = v }).Short('y')
	b := Flag(set, "b", "b", func(o *ruleOpts, v bool) { o.B = v }).Short('b')
	x.Requires(y.ID()).Requires(y.ID())
	x.Precludes(b.ID()).Precludes(b.ID())

	p, err := set.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, p.rules.requirements.Len())
	assert.Len(t, p.rules.preclusions, 1)
}

func TestRuleDeclString(t *testing.T) {
	assert.Equal(t, "1 requires 2", ruleDecl{kind: ruleRequires, subject: 1, other: 2}.String())
	assert.Equal(t, "3 precludes 1", ruleDecl{kind: rulePrecludes, subject: 3, other: 1}.String())
}

// configMessages flattens a Build error into its messages
func configMessages(t *testing.T, err error) []string {
	t.Helper()
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var msgs []string
		for _, e := range joined.Unwrap() {
			msgs = append(msgs, configMessages(t, e)...)
		}
		return msgs
	}

	var ce *ConfigError
	require.True(t, errors.As(err, &ce), "want *ConfigError, got %T", err)
	return []string{ce.Error()}
}
