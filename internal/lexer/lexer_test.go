package lexer

import (
	"strings"
	"testing"

	"wu/internal/diag"
	"wu/internal/source"
	"wu/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.wu", []byte(src))
	file := fs.Get(fid)
	bag := diag.NewBag(128)
	lx := New(file, Options{Reporter: &diag.BagReporter{Bag: bag}})

	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, bag
		}
		if len(toks) > len(src)+2 {
			t.Fatalf("lexer produced more tokens than bytes for %q", src)
		}
	}
}

func kindsOf(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []token.Kind
	}{
		{
			name:  "empty",
			src:   "",
			kinds: []token.Kind{token.EOF},
		},
		{
			name:  "whitespace only",
			src:   "  \t\n  ",
			kinds: []token.Kind{token.EOF},
		},
		{
			name: "let statement",
			src:  "let x = 42;",
			kinds: []token.Kind{
				token.KwLet, token.Ident, token.Assign, token.IntLit, token.Semicolon, token.EOF,
			},
		},
		{
			name: "fn header",
			src:  "fn add(a: int, b: int) -> int",
			kinds: []token.Kind{
				token.KwFn, token.Ident, token.LParen,
				token.Ident, token.Colon, token.Ident, token.Comma,
				token.Ident, token.Colon, token.Ident,
				token.RParen, token.Arrow, token.Ident, token.EOF,
			},
		},
		{
			name: "compound assigns",
			src:  "x += 1; x -= 2; x *= 3; x /= 4; x %= 5;",
			kinds: []token.Kind{
				token.Ident, token.PlusAssign, token.IntLit, token.Semicolon,
				token.Ident, token.MinusAssign, token.IntLit, token.Semicolon,
				token.Ident, token.StarAssign, token.IntLit, token.Semicolon,
				token.Ident, token.SlashAssign, token.IntLit, token.Semicolon,
				token.Ident, token.PercentAssign, token.IntLit, token.Semicolon,
				token.EOF,
			},
		},
		{
			name: "longest match wins",
			src:  "<< <= < >> >= > == = != ! && & || |",
			kinds: []token.Kind{
				token.Shl, token.LtEq, token.Lt,
				token.Shr, token.GtEq, token.Gt,
				token.EqEq, token.Assign, token.BangEq, token.Bang,
				token.AndAnd, token.Amp, token.OrOr, token.Pipe,
				token.EOF,
			},
		},
		{
			name: "keywords and literals",
			src:  "if else while true false nothing return break continue mut",
			kinds: []token.Kind{
				token.KwIf, token.KwElse, token.KwWhile, token.KwTrue, token.KwFalse,
				token.NothingLit, token.KwReturn, token.KwBreak, token.KwContinue,
				token.KwMut, token.EOF,
			},
		},
		{
			name:  "underscore alone",
			src:   "_ _x x_",
			kinds: []token.Kind{token.Underscore, token.Ident, token.Ident, token.EOF},
		},
		{
			name: "brackets",
			src:  "({[]})",
			kinds: []token.Kind{
				token.LParen, token.LBrace, token.LBracket,
				token.RBracket, token.RBrace, token.RParen, token.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexAll(t, tt.src)
			got := kindsOf(toks)
			if len(got) != len(tt.kinds) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.kinds), tt.kinds)
			}
			for i := range got {
				if got[i] != tt.kinds[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.kinds[i])
				}
			}
			if bag.HasErrors() {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    token.Kind
		text    string
		wantBad bool
	}{
		{name: "zero", src: "0", kind: token.IntLit, text: "0"},
		{name: "decimal", src: "12345", kind: token.IntLit, text: "12345"},
		{name: "separators", src: "1_000_000", kind: token.IntLit, text: "1_000_000"},
		{name: "hex", src: "0xDEAD_beef", kind: token.IntLit, text: "0xDEAD_beef"},
		{name: "octal", src: "0o755", kind: token.IntLit, text: "0o755"},
		{name: "binary", src: "0b1010", kind: token.IntLit, text: "0b1010"},
		{name: "float", src: "3.14", kind: token.FloatLit, text: "3.14"},
		{name: "trailing dot", src: "1.", kind: token.FloatLit, text: "1."},
		{name: "leading dot", src: ".5", kind: token.FloatLit, text: ".5"},
		{name: "exponent", src: "1e9", kind: token.FloatLit, text: "1e9"},
		{name: "signed exponent", src: "2.5e-3", kind: token.FloatLit, text: "2.5e-3"},
		{name: "empty hex", src: "0x", kind: token.Invalid, text: "0x", wantBad: true},
		{name: "empty binary", src: "0b", kind: token.Invalid, text: "0b", wantBad: true},
		{name: "empty exponent", src: "1e+", kind: token.Invalid, text: "1e+", wantBad: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexAll(t, tt.src)
			if toks[0].Kind != tt.kind {
				t.Fatalf("kind: got %v, want %v", toks[0].Kind, tt.kind)
			}
			if toks[0].Text != tt.text {
				t.Errorf("text: got %q, want %q", toks[0].Text, tt.text)
			}
			if tt.wantBad {
				if !hasCode(bag, diag.LexBadNumber) {
					t.Errorf("want LexBadNumber, got %v", bag.Items())
				}
			} else if bag.HasErrors() {
				t.Errorf("unexpected diagnostics: %v", bag.Items())
			}
		})
	}
}

func TestLexerNumberFollowedByDotIdent(t *testing.T) {
	toks, bag := lexAll(t, "1.foo")
	want := []token.Kind{token.IntLit, token.Dot, token.Ident, token.EOF}
	got := kindsOf(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexerStrings(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		toks, bag := lexAll(t, `"hello"`)
		if toks[0].Kind != token.StringLit || toks[0].Text != `"hello"` {
			t.Fatalf("got %v %q", toks[0].Kind, toks[0].Text)
		}
		if bag.HasErrors() {
			t.Errorf("unexpected diagnostics: %v", bag.Items())
		}
	})

	t.Run("escaped quote", func(t *testing.T) {
		toks, bag := lexAll(t, `"a\"b"`)
		if toks[0].Kind != token.StringLit || toks[0].Text != `"a\"b"` {
			t.Fatalf("got %v %q", toks[0].Kind, toks[0].Text)
		}
		if bag.HasErrors() {
			t.Errorf("unexpected diagnostics: %v", bag.Items())
		}
	})

	t.Run("newline inside", func(t *testing.T) {
		toks, bag := lexAll(t, "\"a\nb\"")
		if toks[0].Kind != token.StringLit {
			t.Fatalf("got %v", toks[0].Kind)
		}
		if bag.HasErrors() {
			t.Errorf("newline in string must not be an error: %v", bag.Items())
		}
	})

	t.Run("unterminated", func(t *testing.T) {
		toks, bag := lexAll(t, `"abc`)
		if toks[0].Kind != token.StringLit {
			t.Fatalf("want StringLit for unterminated string, got %v", toks[0].Kind)
		}
		if toks[0].Span.Start != 0 || toks[0].Span.End != 4 {
			t.Errorf("span: got %d..%d, want 0..4", toks[0].Span.Start, toks[0].Span.End)
		}
		if !hasCode(bag, diag.LexUnterminatedString) {
			t.Errorf("want LexUnterminatedString, got %v", bag.Items())
		}
		if toks[1].Kind != token.EOF {
			t.Errorf("want EOF after unterminated string, got %v", toks[1].Kind)
		}
	})

	t.Run("backslash at eof", func(t *testing.T) {
		toks, bag := lexAll(t, `"abc\`)
		if toks[0].Kind != token.StringLit {
			t.Fatalf("got %v", toks[0].Kind)
		}
		if !hasCode(bag, diag.LexUnterminatedString) {
			t.Errorf("want LexUnterminatedString, got %v", bag.Items())
		}
	})
}

func TestLexerTrivia(t *testing.T) {
	t.Run("leading comment attaches", func(t *testing.T) {
		toks, _ := lexAll(t, "// note\nlet x = 1;")
		if toks[0].Kind != token.KwLet {
			t.Fatalf("got %v", toks[0].Kind)
		}
		var kinds []token.TriviaKind
		for _, tr := range toks[0].Leading {
			kinds = append(kinds, tr.Kind)
		}
		want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline}
		if len(kinds) != len(want) {
			t.Fatalf("trivia: got %v, want %v", kinds, want)
		}
		for i := range want {
			if kinds[i] != want[i] {
				t.Errorf("trivia %d: got %v, want %v", i, kinds[i], want[i])
			}
		}
	})

	t.Run("nested block comment", func(t *testing.T) {
		toks, bag := lexAll(t, "/* a /* b */ c */ x")
		if toks[0].Kind != token.Ident || toks[0].Text != "x" {
			t.Fatalf("got %v %q", toks[0].Kind, toks[0].Text)
		}
		if bag.HasErrors() {
			t.Errorf("unexpected diagnostics: %v", bag.Items())
		}
	})

	t.Run("unterminated block comment", func(t *testing.T) {
		toks, bag := lexAll(t, "x /* never closed")
		if toks[0].Kind != token.Ident {
			t.Fatalf("got %v", toks[0].Kind)
		}
		if toks[1].Kind != token.EOF {
			t.Fatalf("comment must run to EOF, got %v", toks[1].Kind)
		}
		if !hasCode(bag, diag.LexUnterminatedBlockComment) {
			t.Errorf("want LexUnterminatedBlockComment, got %v", bag.Items())
		}
	})

	t.Run("spaces coalesce", func(t *testing.T) {
		toks, _ := lexAll(t, "   \t  x")
		if len(toks[0].Leading) != 1 || toks[0].Leading[0].Kind != token.TriviaSpace {
			t.Fatalf("got %v", toks[0].Leading)
		}
	})

	t.Run("trailing comment attaches to EOF", func(t *testing.T) {
		toks, bag := lexAll(t, "x // tail")
		eof := toks[len(toks)-1]
		if eof.Kind != token.EOF {
			t.Fatalf("stream did not end in EOF: %v", eof.Kind)
		}
		var kinds []token.TriviaKind
		for _, tr := range eof.Leading {
			kinds = append(kinds, tr.Kind)
		}
		want := []token.TriviaKind{token.TriviaSpace, token.TriviaLineComment}
		if len(kinds) != len(want) {
			t.Fatalf("EOF trivia: got %v, want %v", kinds, want)
		}
		for i := range want {
			if kinds[i] != want[i] {
				t.Errorf("EOF trivia %d: got %v, want %v", i, kinds[i], want[i])
			}
		}
		if bag.HasErrors() {
			t.Errorf("unexpected diagnostics: %v", bag.Items())
		}
	})
}

func TestLexerUnknownBytes(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "nul", src: "\x00"},
		{name: "at sign", src: "@"},
		{name: "backtick", src: "`"},
		{name: "stray ff", src: "\xff"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := lexAll(t, tt.src)
			if toks[0].Kind != token.Invalid {
				t.Fatalf("got %v, want Invalid", toks[0].Kind)
			}
			if toks[0].Span.Len() != 1 {
				t.Errorf("Invalid token must cover exactly one byte, got %d", toks[0].Span.Len())
			}
			if !hasCode(bag, diag.LexUnknownChar) {
				t.Errorf("want LexUnknownChar, got %v", bag.Items())
			}
		})
	}
}

func TestLexerUnicodeIdent(t *testing.T) {
	toks, bag := lexAll(t, "дано = 1")
	if toks[0].Kind != token.Ident || toks[0].Text != "дано" {
		t.Fatalf("got %v %q", toks[0].Kind, toks[0].Text)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

// Every input, however hostile, must terminate with at most len+1 tokens.
func TestLexerForwardProgress(t *testing.T) {
	inputs := []string{
		"\x00\x01\x02\x03\xfe\xff",
		strings.Repeat("@", 64),
		strings.Repeat(`"`, 33),
		"0x0x0x",
		"/*/*/*",
		strings.Repeat(".", 50),
		"let\x00let\x00let",
	}
	for _, src := range inputs {
		toks, _ := lexAll(t, src)
		if len(toks) > len(src)+1 {
			t.Errorf("%q: %d tokens for %d bytes", src, len(toks), len(src))
		}
		last := toks[len(toks)-1]
		if last.Kind != token.EOF {
			t.Errorf("%q: stream did not end in EOF", src)
		}
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wu", []byte("x")))
	lx := New(file, Options{})
	lx.Next()
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d after EOF: got %v", i, tok.Kind)
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wu", []byte("a b")))
	lx := New(file, Options{})
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Text != n.Text {
		t.Fatalf("Peek %v %q != Next %v %q", p.Kind, p.Text, n.Kind, n.Text)
	}
	if next := lx.Next(); next.Text != "b" {
		t.Fatalf("got %q, want b", next.Text)
	}
}

func TestLexerSpansTile(t *testing.T) {
	src := "let x=1+2; // done\nfn f() {}"
	toks, _ := lexAll(t, src)
	var prevEnd uint32
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			if tr.Span.Start != prevEnd {
				t.Fatalf("trivia gap: %d..%d after %d", tr.Span.Start, tr.Span.End, prevEnd)
			}
			prevEnd = tr.Span.End
		}
		if tok.Kind == token.EOF {
			break
		}
		if tok.Span.Start != prevEnd {
			t.Fatalf("token gap: %q at %d..%d after %d", tok.Text, tok.Span.Start, tok.Span.End, prevEnd)
		}
		if tok.Span.End <= tok.Span.Start {
			t.Fatalf("empty token span for %q", tok.Text)
		}
		prevEnd = tok.Span.End
	}
	if prevEnd != uint32(len(src)) {
		t.Fatalf("coverage ends at %d, want %d", prevEnd, len(src))
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
