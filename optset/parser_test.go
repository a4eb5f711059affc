//nolint:testpackage // using package name 'optset' to reach entries and wrap
package optset

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOpts struct {
	A, B, D  bool
	Verbose  bool
	C, H     string
	Expected string
	Count    int
	Tags     []string
	Timeout  time.Duration
}

func newTestSet(cfg Config) *OptionSet[testOpts] {
	set := New[testOpts](nil).WithConfig(cfg)
	Flag(set, "a", "flag a", func(o *testOpts, v bool) { o.A = v }).Short('a')
	Flag(set, "b", "flag b", func(o *testOpts, v bool) { o.B = v }).Short('b')
	Add(set, "c", "value c", func(o *testOpts, v string) { o.C = v }).Short('c')
	Flag(set, "d", "flag d", func(o *testOpts, v bool) { o.D = v }).Short('d')
	Add(set, "h", "value h", func(o *testOpts, v string) { o.H = v }).Short('h')
	Flag(set, "verbose", "print more", func(o *testOpts, v bool) { o.Verbose = v }).Short('v').Long("verbose")
	Add(set, "expected", "expected fruit", func(o *testOpts, v string) { o.Expected = v }).Long("expected")
	Add(set, "count", "how many", func(o *testOpts, v int) { o.Count = v }).Short('n').Long("count")
	Add(set, "tags", "comma separated tags", func(o *testOpts, v []string) { o.Tags = v }).Long("tags")
	Add(set, "timeout", "give up after", func(o *testOpts, v time.Duration) { o.Timeout = v }).Long("timeout")
	return set
}

func newTestParser(t *testing.T, cfg Config) *Parser[testOpts] {
	t.Helper()
	p, err := newTestSet(cfg).Build()
	require.NoError(t, err)
	return p
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []string
		wantOpts testOpts
		wantArgs []string
	}{
		{"flag", []string{"-a"}, testOpts{A: true}, nil},
		{"bundled flags then value", []string{"-abcdefg"}, testOpts{A: true, B: true, C: "defg"}, nil},
		{"long equals", []string{"--expected=banana"}, testOpts{Expected: "banana"}, nil},
		{"long space", []string{"--expected", "banana"}, testOpts{Expected: "banana"}, nil},
		{"long empty equals", []string{"--expected="}, testOpts{}, nil},
		{"long equals keeps later equals", []string{"--expected=a=b"}, testOpts{Expected: "a=b"}, nil},
		{"long equals then argument", []string{"--count=7", "rest"}, testOpts{Count: 7}, []string{"rest"}},
		{"short adjoined value", []string{"-cvalue"}, testOpts{C: "value"}, nil},
		{"short space value", []string{"-c", "value"}, testOpts{C: "value"}, nil},
		{"value that looks like an option", []string{"-c", "-a"}, testOpts{C: "-a"}, nil},
		{"flag leaves next token", []string{"-a", "file"}, testOpts{A: true}, []string{"file"}},
		{"long flag explicit false", []string{"--verbose=false"}, testOpts{}, nil},
		{"long flag explicit true", []string{"--verbose=yes"}, testOpts{Verbose: true}, nil},
		{"repeated option last wins", []string{"-c", "x", "-c", "y"}, testOpts{C: "y"}, nil},
		{"int value", []string{"--count", "0x10"}, testOpts{Count: 16}, nil},
		{"negative int", []string{"-n", "-3"}, testOpts{Count: -3}, nil},
		{"slice value", []string{"--tags=a, b,,c"}, testOpts{Tags: []string{"a", "b", "c"}}, nil},
		{"duration value", []string{"--timeout", "1h30m"}, testOpts{Timeout: 90 * time.Minute}, nil},
		{"interleaved arguments", []string{"one", "-a", "two", "-b"}, testOpts{A: true, B: true}, []string{"one", "two"}},
		{"lone dash is an argument", []string{"-", "-a"}, testOpts{A: true}, []string{"-"}},
		{"dash digit is an argument", []string{"-3"}, testOpts{}, []string{"-3"}},
		{
			"end of options",
			[]string{"x", "-a", "--", "-b", "--", "y"},
			testOpts{A: true},
			[]string{"x", "-b", "--", "y"},
		},
	}

	p := newTestParser(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Parse(tt.tokens)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.wantOpts, res.Options); diff != "" {
				t.Errorf("options mismatch (-want +got):\n%s", diff)
			}
			if len(tt.wantArgs) == 0 {
				assert.Empty(t, res.Args)
			} else {
				assert.Equal(t, tt.wantArgs, res.Args)
			}
		})
	}
}

func TestParsePosixOptionOrder(t *testing.T) {
	p := newTestParser(t, Config{PosixOptionOrder: true})

	res, err := p.Parse([]string{"-d", "efg", "-h", "ijk", "--", "lmno", "--"})
	require.NoError(t, err)
	assert.True(t, res.Options.D)
	assert.Empty(t, res.Options.H)
	assert.Equal(t, []string{"efg", "-h", "ijk", "lmno", "--"}, res.Args)

	res, err = p.Parse([]string{"-a", "--", "-b"})
	require.NoError(t, err)
	assert.True(t, res.Options.A)
	assert.False(t, res.Options.B)
	assert.Equal(t, []string{"-b"}, res.Args)
}

func TestParseWithOverridesConfig(t *testing.T) {
	p := newTestParser(t, Config{})
	tokens := []string{"x", "-a"}

	res, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.True(t, res.Options.A)

	res, err = p.ParseWith(tokens, Config{PosixOptionOrder: true})
	require.NoError(t, err)
	assert.False(t, res.Options.A)
	assert.Equal(t, []string{"x", "-a"}, res.Args)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    ErrorType
		option  string
		message string
	}{
		{"unknown short", []string{"-z"}, ErrorTypeUnknownOption, "z", "unknown option -z"},
		{"unknown in bundle", []string{"-abz"}, ErrorTypeUnknownOption, "z", "unknown option -z"},
		{"unknown long", []string{"--colour"}, ErrorTypeUnknownOption, "colour", "unknown option --colour"},
		{"missing short value", []string{"-a", "-c"}, ErrorTypeMissingValue, "c", "option -c requires a value"},
		{"missing long value", []string{"--expected"}, ErrorTypeMissingValue, "expected", "option --expected requires a value"},
		{
			"bad int", []string{"--count=abc"}, ErrorTypeValueFormat, "count",
			`invalid value "abc" for option --count: invalid decimal character 'a'`,
		},
		{
			"bad flag value", []string{"--verbose=maybe"}, ErrorTypeValueFormat, "verbose",
			`invalid value "maybe" for option --verbose: invalid boolean "maybe"`,
		},
	}

	p := newTestParser(t, Config{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := p.Parse(tt.tokens)
			require.Error(t, err)
			assert.Nil(t, res)

			pe, ok := AsParseError(err)
			require.True(t, ok, "want *ParseError, got %T", err)
			assert.Equal(t, tt.want, pe.Type)
			assert.Equal(t, tt.option, pe.Option)
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestParseErrorStopsAtFirstProblem(t *testing.T) {
	p := newTestParser(t, Config{})
	_, err := p.Parse([]string{"-a", "-z", "--count=abc"})
	assert.True(t, errors.Is(err, &ParseError{Type: ErrorTypeUnknownOption, Option: "z"}))
}

func TestParseValueFormatKeepsCause(t *testing.T) {
	errNotEven := errors.New("not even")

	set := New[testOpts](nil)
	Add(set, "count", "an even count", func(o *testOpts, v int) { o.Count = v }).
		Long("count").
		Validate(func(v int) error {
			if v%2 != 0 {
				return errNotEven
			}
			return nil
		})
	p := set.MustBuild()

	_, err := p.Parse([]string{"--count", "3"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errNotEven))

	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, ErrorTypeValueFormat, pe.Type)
	assert.Equal(t, "3", pe.Value)
	assert.Equal(t, "not even", pe.Message)

	res, err := p.Parse([]string{"--count", "4"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Options.Count)
}

func TestParseUnknownLongSuggestion(t *testing.T) {
	p := newTestParser(t, Config{})
	_, err := p.Parse([]string{"--expectd=1"})
	pe, ok := AsParseError(err)
	require.True(t, ok)
	assert.Equal(t, "expected", pe.Suggestion)

	_, err = p.Parse([]string{"-z"})
	pe, ok = AsParseError(err)
	require.True(t, ok)
	assert.Empty(t, pe.Suggestion)
}

func TestParseDoesNotModifyInput(t *testing.T) {
	p := newTestParser(t, Config{})
	tokens := []string{"-abcx", "arg", "--expected", "kiwi", "--", "-v"}
	before := slices.Clone(tokens)

	res, err := p.Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, before, tokens)
	assert.Equal(t, []string{"arg", "-v"}, res.Args)
}

func TestParseStartsFromFactory(t *testing.T) {
	set := New(func() testOpts { return testOpts{C: "default", Count: 7} })
	Add(set, "c", "value c", func(o *testOpts, v string) { o.C = v }).Short('c')
	Add(set, "count", "how many", func(o *testOpts, v int) { o.Count = v }).Long("count")
	p := set.MustBuild()

	res, err := p.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, testOpts{C: "default", Count: 7}, res.Options)

	res, err = p.Parse([]string{"-cother"})
	require.NoError(t, err)
	assert.Equal(t, testOpts{C: "other", Count: 7}, res.Options)
}

func TestParseAppliesInFirstOccurrenceOrder(t *testing.T) {
	type log struct{ Steps []string }
	set := New[log](nil)
	Add(set, "x", "step x", func(l *log, v string) { l.Steps = append(l.Steps, "x="+v) }).Short('x')
	Add(set, "y", "step y", func(l *log, v string) { l.Steps = append(l.Steps, "y="+v) }).Short('y')
	p := set.MustBuild()

	res, err := p.Parse([]string{"-x1", "-y2", "-x3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x=3", "y=2"}, res.Options.Steps)
}

func TestParseUnicodeNames(t *testing.T) {
	type opts struct {
		Größe string
		Ж     bool
	}
	set := New[opts](nil)
	Add(set, "größe", "size", func(o *opts, v string) { o.Größe = v }).Long("größe")
	Flag(set, "ж", "zhe", func(o *opts, v bool) { o.Ж = v }).Short('ж')
	p := set.MustBuild()

	res, err := p.Parse([]string{"--größe=XL", "-ж"})
	require.NoError(t, err)
	assert.Equal(t, opts{Größe: "XL", Ж: true}, res.Options)
}

func TestParserID(t *testing.T) {
	p := newTestParser(t, Config{})
	id, ok := p.ID("expected")
	assert.True(t, ok)
	assert.Equal(t, ID(7), id)

	_, ok = p.ID("nope")
	assert.False(t, ok)
}
