package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"fn":       KwFn,
		"let":      KwLet,
		"mut":      KwMut,
		"if":       KwIf,
		"else":     KwElse,
		"while":    KwWhile,
		"break":    KwBreak,
		"continue": KwContinue,
		"return":   KwReturn,
		"true":     KwTrue,
		"false":    KwFalse,
		"nothing":  NothingLit,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	notKw := []string{
		"Fn", "LET", "If", // case matters
		"int", "float", "str", "bool", // type names stay identifiers
		"identifier", "letx", "fnord",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}
