//nolint:testpackage // internal packages are only importable from inside the module
package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-optset/internal/fuzzy"
	"github.com/dzonerzy/go-optset/internal/intern"
	"github.com/dzonerzy/go-optset/internal/lexer"
	"github.com/dzonerzy/go-optset/internal/pool"
)

var longNames = []string{
	"help", "version", "verbose", "config", "output", "input",
	"force", "debug", "port", "host", "timeout", "retry",
}

func BenchmarkMatcher_FindBest(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.FindBest("hep", longNames)
	}
}

func BenchmarkMatcher_FindMatches(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		matcher.FindMatches("ver", longNames)
	}
}

func BenchmarkFindSuggestions(b *testing.B) {
	b.Run("FindBestOption", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindBestOption("timout", longNames)
		}
	})
	b.Run("FindSuggestions", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			fuzzy.FindSuggestions("ver", longNames, 2, 3)
		}
	})
}

func BenchmarkStringInterner_Intern(b *testing.B) {
	interner := intern.NewStringInterner(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.Intern(longNames[i%len(longNames)])
	}
}

func BenchmarkStringInterner_InternRune(b *testing.B) {
	interner := intern.NewStringInterner(0, 0)
	runes := []rune{'a', 'h', 'v', 'c', 'ж', 'ß'}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		interner.InternRune(runes[i%len(runes)])
	}
}

func BenchmarkGlobalIntern(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			intern.Intern(longNames[i%len(longNames)])
			i++
		}
	})
}

func BenchmarkLexer_Parse(b *testing.B) {
	inputs := [][]string{
		{"-abc"},
		{"-o", "file"},
		{"--output=file"},
		{"--output", "file"},
		{"plain"},
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		lexer.Parse(inputs[i%len(inputs)])
	}
}

func BenchmarkTokenPool_GetPut(b *testing.B) {
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s := pool.GetTokens()
			*s = append(*s, "-a", "-b", "--", "x")
			pool.PutTokens(s)
		}
	})
}

func BenchmarkPool_vs_Direct(b *testing.B) {
	p := pool.NewStringSlicePool(32, 1024)

	b.Run("Pool", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				s := p.Get()
				*s = append(*s, "a", "b", "c")
				p.Put(s)
			}
		})
	})

	b.Run("Direct", func(b *testing.B) {
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				s := make([]string, 0, 32)
				s = append(s, "a", "b", "c")
				_ = s
			}
		})
	})
}

func BenchmarkBufferPool_GetPut(b *testing.B) {
	line := []byte("  -o, --output=FILE  write to FILE\n")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := pool.GetBuffer()
		for range 16 {
			*buf = append(*buf, line...)
		}
		pool.PutBuffer(buf)
	}
}
