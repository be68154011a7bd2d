package fuzztests

import (
	"testing"
	"time"

	"wu/internal/driver"
	"wu/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// Anything longer indicates a lost forward-progress guarantee.
const parseTimeout = 5 * time.Second

// FuzzParserBuildsAST checks parser totality: any byte sequence yields a
// structurally valid tree whose spans stay inside the input.
func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		res := driver.ParseBytes("fuzz.wu", input, 128)
		if res.Builder.Files.Get(res.FileID) == nil {
			t.Fatalf("parse produced no root node")
		}
		if err := testkit.CheckFileInvariants(res.Builder, res.FileID, uint32(len(input))); err != nil {
			t.Fatalf("invariant violated: %v", err)
		}
	})
}

// FuzzParserDeterministic re-runs the frontend on the same bytes and demands
// identical diagnostics and tree sizes.
func FuzzParserDeterministic(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		a := driver.ParseBytes("fuzz.wu", input, 128)
		b := driver.ParseBytes("fuzz.wu", input, 128)

		if a.Bag.Len() != b.Bag.Len() {
			t.Fatalf("diagnostic counts differ: %d vs %d", a.Bag.Len(), b.Bag.Len())
		}
		for i := range a.Bag.Items() {
			da, db := a.Bag.Items()[i], b.Bag.Items()[i]
			if da.Code != db.Code || da.Primary != db.Primary || da.Message != db.Message {
				t.Fatalf("diagnostic %d differs: %+v vs %+v", i, da, db)
			}
		}
		if a.Builder.Stmts.Len() != b.Builder.Stmts.Len() || a.Builder.Exprs.Len() != b.Builder.Exprs.Len() {
			t.Fatalf("arena sizes differ between runs")
		}
	})
}

// FuzzParserNoHang detects lost forward progress with a wall-clock timeout.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	// shapes that stress recovery paths
	f.Add([]byte("fn test() { let x: int = 1\nlet y: int = 2; }")) // missing semicolon
	f.Add([]byte("{ let x = 1 }"))                                 // block without trailing semicolon
	f.Add([]byte("fn f() { { { { } } } }"))                        // nested blocks
	f.Add([]byte("f(((((((((((((((((((((("))                      // unclosed call chain
	f.Add([]byte("}}}}}}}}"))                                      // closers with no openers
	f.Add([]byte("let = = = ;"))                                   // operator soup

	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = driver.ParseBytes("fuzz.wu", input, 128)
		}()

		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser did not terminate within %v on %d bytes", parseTimeout, len(input))
		}
	})
}
