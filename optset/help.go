package optset

import (
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/dzonerzy/go-optset/internal/pool"
	optio "github.com/dzonerzy/go-optset/io"
)

const (
	helpIndent    = 2
	helpGap       = 2
	maxNameColumn = 32
	minHelpWidth  = 20
)

// Help returns the option list formatted for the current terminal width
func (p *Parser[T]) Help() string {
	var b strings.Builder
	_ = p.Usage(&b, optio.New().Width())
	return b.String()
}

// Usage writes the option list to w, wrapping help text at width columns.
// Options are listed in declaration order with their rules.
func (p *Parser[T]) Usage(w io.Writer, width int) error {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	left := make([]string, len(p.entries))
	column := 0
	for i, e := range p.entries {
		left[i] = optionSynopsis(e)
		if n := utf8.RuneCountInString(left[i]); n <= maxNameColumn {
			column = max(column, n)
		}
	}
	column += helpIndent + helpGap
	textWidth := max(width-column, minHelpWidth)

	b := append(*buf, "Options:\n"...)
	for i, e := range p.entries {
		b = append(b, strings.Repeat(" ", helpIndent)...)
		b = append(b, left[i]...)

		pad := column - helpIndent - utf8.RuneCountInString(left[i])
		if pad < helpGap {
			// name too long for the column, help starts on the next line
			b = append(b, '\n')
			pad = column
		}

		for j, line := range wrap(p.helpText(e), textWidth) {
			if j > 0 {
				pad = column
			}
			b = append(b, strings.Repeat(" ", pad)...)
			b = append(b, line...)
			b = append(b, '\n')
		}
	}
	*buf = b

	_, err := w.Write(b)
	return err
}

// optionSynopsis renders "-o, --output=FILE", "--dry-run" or "-n INT"
func optionSynopsis[T any](e *entry[T]) string {
	var s string
	switch {
	case !e.short.IsZero() && !e.long.IsZero():
		s = e.short.Flag() + ", " + e.long.Flag()
	case !e.short.IsZero():
		s = e.short.Flag()
	default:
		s = "    " + e.long.Flag()
	}

	if e.flag {
		return s
	}
	if e.long.IsZero() {
		return s + " " + e.valueName
	}
	return s + "=" + e.valueName
}

func (p *Parser[T]) helpText(e *entry[T]) string {
	text := e.help

	if req := p.rules.requiresOf(e.id); len(req) > 0 {
		text += " (requires " + p.flagList(req) + ")"
	}
	if pre := p.rules.precludesOf(e.id); len(pre) > 0 {
		text += " (conflicts with " + p.flagList(pre) + ")"
	}
	return text
}

func (p *Parser[T]) flagList(ids []ID) string {
	ids = slices.Clone(ids)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = dashed(p.nameOf(id))
	}
	return strings.Join(names, ", ")
}

// wrap splits text into lines of at most width runes, breaking on spaces.
// Words longer than width get a line of their own.
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
