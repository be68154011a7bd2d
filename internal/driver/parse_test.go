package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"wu/internal/diag"
)

func TestParseBytesKeepsInputVerbatim(t *testing.T) {
	// BOM and CRLF must reach the lexer untouched for in-memory input
	input := []byte("\xef\xbb\xbflet x = 1;\r\n")
	res := ParseBytes("virt.wu", input, 64)
	if got := len(res.File.Content); got != len(input) {
		t.Fatalf("content length changed: got %d, want %d", got, len(input))
	}
	// the BOM bytes surface as unknown-character diagnostics
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.LexUnknownChar {
			found = true
		}
	}
	if !found {
		t.Errorf("BOM bytes were silently accepted: %v", res.Bag.Items())
	}
}

func TestParseNormalizesDiskInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crlf.wu")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbflet x = 1;\r\nlet y = 2;\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := Parse(path, 64)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if res.Bag.HasErrors() {
		t.Errorf("normalized disk input produced diagnostics: %v", res.Bag.Items())
	}
	root := res.Builder.Files.Get(res.FileID)
	if len(root.Stmts) != 2 {
		t.Errorf("got %d statements, want 2", len(root.Stmts))
	}
}

func TestParseBytesIsolation(t *testing.T) {
	a := ParseBytes("a.wu", []byte("let x = 1;"), 64)
	b := ParseBytes("b.wu", []byte("let x = 1;"), 64)
	if a.Builder == b.Builder || a.FileSet == b.FileSet || a.Bag == b.Bag {
		t.Fatalf("invocations must not share state")
	}
}

func TestTokenizeBytes(t *testing.T) {
	res := TokenizeBytes("t.wu", []byte("fn main() {}"), 64)
	if len(res.Tokens) != 7 { // fn main ( ) { } EOF
		t.Fatalf("got %d tokens, want 7", len(res.Tokens))
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.wu":        "let a = 1;",
		"b.wu":        "let b = ;",
		"sub/c.wu":    "fn c() {}",
		"ignored.txt": "not wu",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var seen int
	results, err := ParseDir(context.Background(), dir, DirOptions{
		MaxDiagnostics: 64,
		OnResult: func(res DirEntryResult, done, total int) {
			seen++
			if total != 3 {
				t.Errorf("total: got %d, want 3", total)
			}
		},
	})
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if seen != 3 {
		t.Errorf("OnResult fired %d times, want 3", seen)
	}
	// sorted by path
	for i := 1; i < len(results); i++ {
		if results[i-1].Path >= results[i].Path {
			t.Errorf("results not sorted: %q before %q", results[i-1].Path, results[i].Path)
		}
	}
	// only b.wu is broken
	for _, r := range results {
		broken := r.Result.Bag.HasErrors()
		wantBroken := filepath.Base(r.Path) == "b.wu"
		if broken != wantBroken {
			t.Errorf("%s: broken=%v, want %v", r.Path, broken, wantBroken)
		}
	}
}

// Every program shipped in showcase/ must parse clean.
func TestShowcasePrograms(t *testing.T) {
	pattern := filepath.Join("..", "..", "showcase", "*.wu")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatalf("no showcase programs found at %s", pattern)
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			res, err := Parse(path, 64)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if res.Bag.HasErrors() {
				t.Errorf("diagnostics in showcase program: %v", res.Bag.Items())
			}
		})
	}
}
