package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"wu/internal/ast"
	"wu/internal/diag"
	"wu/internal/parser"
	"wu/internal/source"
)

func diagFixture(t *testing.T, src string) (*source.FileSet, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("demo.wu", []byte(src)))
	builder := ast.NewBuilder(ast.Hints{})
	bag := diag.NewBag(64)
	parser.ParseFile(file, builder, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return fs, bag
}

func TestPrettyHeaderLine(t *testing.T) {
	fs, bag := diagFixture(t, "let = 1;")
	if bag.Len() == 0 {
		t.Fatalf("fixture produced no diagnostics")
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()

	if !strings.Contains(out, "demo.wu:1:5:") {
		t.Errorf("missing path:line:col header in:\n%s", out)
	}
	if !strings.Contains(out, "ERROR SYN2004:") {
		t.Errorf("missing severity and code in:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("missing caret underline in:\n%s", out)
	}
}

func TestPrettyNoColorHasNoEscapes(t *testing.T) {
	fs, bag := diagFixture(t, "let x = ;")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("color disabled but output has escape sequences:\n%q", buf.String())
	}
}

func TestPrettyUnderlineCoversSpan(t *testing.T) {
	fs, bag := diagFixture(t, "let x = @ 1;")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	out := buf.String()
	// the unknown byte is one column wide: a bare caret, no tildes
	if !strings.Contains(out, "^") || strings.Contains(out, "^~") {
		t.Errorf("single-byte span must underline exactly one cell:\n%s", out)
	}
}

func TestJSONOutput(t *testing.T) {
	fs, bag := diagFixture(t, "let x = ;")
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded []DiagnosticOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != bag.Len() {
		t.Fatalf("got %d entries, want %d", len(decoded), bag.Len())
	}
	first := decoded[0]
	if first.Code != "SYN2003" {
		t.Errorf("code: got %q, want SYN2003", first.Code)
	}
	if first.Severity != "ERROR" {
		t.Errorf("severity: got %q", first.Severity)
	}
	if first.Start == nil || first.Start.Line != 1 {
		t.Errorf("positions not included: %+v", first)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs, bag := diagFixture(t, strings.Repeat("let = ;", 10))
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 3}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var decoded []DiagnosticOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("got %d entries, want 3", len(decoded))
	}
}

func TestDisplayPathModes(t *testing.T) {
	if got := displayPath("a/b/c.wu", PathModeBasename); got != "c.wu" {
		t.Errorf("basename: got %q", got)
	}
	if got := displayPath("a/b/c.wu", PathModeAuto); got != "a/b/c.wu" {
		t.Errorf("auto: got %q", got)
	}
}
