package optio

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorSpec is a color in one of three spaces: basic (16), indexed (256) or truecolor (RGB)
type ColorSpec struct {
	kind    int // 1=basic, 2=indexed, 3=truecolor
	index   int // for basic (0-15) and indexed (0-255)
	r, g, b uint8
}

// Basic colors (0-7 normal, 8-15 bright)
var (
	Black   = basic(0)
	Red     = basic(1)
	Green   = basic(2)
	Yellow  = basic(3)
	Blue    = basic(4)
	Magenta = basic(5)
	Cyan    = basic(6)
	White   = basic(7)

	BrightBlack   = basic(8) // Gray
	BrightRed     = basic(9)
	BrightGreen   = basic(10)
	BrightYellow  = basic(11)
	BrightBlue    = basic(12)
	BrightMagenta = basic(13)
	BrightCyan    = basic(14)
	BrightWhite   = basic(15)
)

// A few 256-color and truecolor entries used by the default themes
var (
	LightPurple = Indexed(141)
	Orange      = Indexed(208)

	TrueGray         = Truecolor(128, 128, 128)
	TrueBrightRed    = Truecolor(255, 85, 85)
	TrueBrightGreen  = Truecolor(80, 250, 123)
	TrueBrightYellow = Truecolor(255, 184, 108)
	TrueBrightBlue   = Truecolor(92, 148, 252)
	TrueBrightCyan   = Truecolor(139, 233, 253)
	TrueLightPurple  = Truecolor(189, 147, 249)
)

func basic(i int) ColorSpec { return ColorSpec{kind: 1, index: i} }

// Indexed returns a 256-palette color
func Indexed(i int) ColorSpec { return ColorSpec{kind: 2, index: i} }

// Truecolor returns an RGB color
func Truecolor(r, g, b uint8) ColorSpec { return ColorSpec{kind: 3, r: r, g: g, b: b} }

// Style is a set of SGR attributes and colors
type Style struct {
	fg, bg                                   *ColorSpec
	bold, faint, italic, underline, inverse bool
}

func NewStyle() *Style                 { return &Style{} }
func (s *Style) Fg(c ColorSpec) *Style { s.fg = &c; return s }
func (s *Style) Bg(c ColorSpec) *Style { s.bg = &c; return s }
func (s *Style) Bold() *Style          { s.bold = true; return s }
func (s *Style) Faint() *Style         { s.faint = true; return s }
func (s *Style) Italic() *Style        { s.italic = true; return s }
func (s *Style) Underline() *Style     { s.underline = true; return s }
func (s *Style) Inverse() *Style       { s.inverse = true; return s }

// Sprint returns text styled for io, or unchanged when io has no color
func (s *Style) Sprint(io *IOManager, text string) string {
	if !io.SupportsColor() {
		return text
	}
	seq := s.sgr(io.ColorLevel())
	if seq == "" {
		return text
	}
	return "\x1b[" + seq + "m" + text + "\x1b[0m"
}

// Sprintf formats with fmt.Sprintf and applies the style
func (s *Style) Sprintf(io *IOManager, format string, a ...any) string {
	return s.Sprint(io, fmt.Sprintf(format, a...))
}

func (s *Style) sgr(level int) string {
	codes := make([]string, 0, 7)
	for _, attr := range []struct {
		on   bool
		code string
	}{
		{s.bold, "1"}, {s.faint, "2"}, {s.italic, "3"}, {s.underline, "4"}, {s.inverse, "7"},
	} {
		if attr.on {
			codes = append(codes, attr.code)
		}
	}
	if s.fg != nil {
		if c := colorCode(*s.fg, false, level); c != "" {
			codes = append(codes, c)
		}
	}
	if s.bg != nil {
		if c := colorCode(*s.bg, true, level); c != "" {
			codes = append(codes, c)
		}
	}
	return strings.Join(codes, ";")
}

// colorCode drops colors the terminal level cannot show
func colorCode(c ColorSpec, bg bool, level int) string {
	base := 30
	if bg {
		base = 40
	}
	switch c.kind {
	case 1:
		idx := min(max(c.index, 0), 15)
		if idx < 8 {
			return strconv.Itoa(base + idx)
		}
		return strconv.Itoa(base + 60 + idx - 8)
	case 2:
		if level < 2 {
			return ""
		}
		return strconv.Itoa(base+8) + ";5;" + strconv.Itoa(c.index)
	case 3:
		if level < 3 {
			return ""
		}
		return fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.r, c.g, c.b)
	default:
		return ""
	}
}

// Theme provides semantic colors
type Theme struct {
	Primary, Success, Warning, Error, Info, Debug, Muted ColorSpec
}

// DefaultTheme16 uses the basic 16 colors
func DefaultTheme16() Theme {
	return Theme{
		Primary: BrightBlue,
		Success: BrightGreen,
		Warning: BrightYellow,
		Error:   BrightRed,
		Info:    BrightCyan,
		Debug:   BrightMagenta,
		Muted:   BrightBlack,
	}
}

// DefaultTheme256 is DefaultTheme16 with a real purple for debug
func DefaultTheme256() Theme {
	t := DefaultTheme16()
	t.Debug = LightPurple
	return t
}

// DefaultThemeTruecolor uses 24-bit colors
func DefaultThemeTruecolor() Theme {
	return Theme{
		Primary: TrueBrightBlue,
		Success: TrueBrightGreen,
		Warning: TrueBrightYellow,
		Error:   TrueBrightRed,
		Info:    TrueBrightCyan,
		Debug:   TrueLightPurple,
		Muted:   TrueGray,
	}
}

// DefaultTheme picks the theme matching io's color level
func DefaultTheme(io *IOManager) Theme {
	switch io.ColorLevel() {
	case 3:
		return DefaultThemeTruecolor()
	case 2:
		return DefaultTheme256()
	default:
		return DefaultTheme16()
	}
}
