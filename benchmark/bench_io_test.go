package benchmark

import (
	"bytes"
	"testing"

	optio "github.com/dzonerzy/go-optset/io"
	"github.com/dzonerzy/go-optset/optset"
)

func BenchmarkIO_Style(b *testing.B) {
	io := optio.New().ForceColor().ForceColorLevel(3)
	style := optio.NewStyle().Bold().Fg(optio.TrueBrightRed)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = style.Sprint(io, "Error:")
	}
}

func BenchmarkLogger_Filtered(b *testing.B) {
	var buf bytes.Buffer
	logger := optio.NewLogger(optio.New().NoColor().WithOut(&buf))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Debug("option %s = %q", "-o", "file")
	}
}

func BenchmarkErrorFormatter(b *testing.B) {
	var buf bytes.Buffer
	f := optset.NewErrorFormatter(optio.New().NoColor().WithErr(&buf))
	err := &optset.ParseError{Type: optset.ErrorTypeUnknownOption, Option: "outpt", Suggestion: "output"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = f.Format(err)
	}
}
