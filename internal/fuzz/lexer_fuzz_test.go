package fuzztests

import (
	"testing"

	"wu/internal/diag"
	"wu/internal/lexer"
	"wu/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

// FuzzLexerTokens checks lexer totality: every input terminates in EOF and
// never produces more significant tokens than input bytes.
func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.wu", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

		count := 0
		for {
			tok := lx.Next()
			if tok.Kind.IsEOF() {
				break
			}
			count++
			if count > len(input) {
				t.Fatalf("more tokens than bytes: %d tokens for %d bytes", count, len(input))
			}
			if tok.Span.End <= tok.Span.Start {
				t.Fatalf("empty span on %v token at %d", tok.Kind, tok.Span.Start)
			}
			if tok.Span.End > uint32(len(input)) {
				t.Fatalf("span %d..%d exceeds input length %d", tok.Span.Start, tok.Span.End, len(input))
			}
		}
	})
}
