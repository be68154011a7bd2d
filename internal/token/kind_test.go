package token_test

import (
	"testing"

	"wu/internal/source"
	"wu/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{
		token.NothingLit, token.IntLit, token.FloatLit,
		token.StringLit, token.KwTrue, token.KwFalse,
	}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwLet, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent,
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign,
		token.EqEq, token.Bang, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.Shl, token.Shr, token.Amp, token.Pipe, token.Caret, token.Tilde,
		token.AndAnd, token.OrOr,
		token.Colon, token.Semicolon, token.Comma, token.Dot, token.Arrow,
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Underscore,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.IntLit, token.EOF}
	for _, k := range non {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKindStringUnique(t *testing.T) {
	// operator spellings must be unambiguous for diagnostics output
	seen := map[string]token.Kind{}
	for k := token.Invalid; k <= token.Underscore; k++ {
		s := k.String()
		if s == "Kind(?)" {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, dup := seen[s]; dup {
			t.Fatalf("kinds %v and %v share the name %q", prev, k, s)
		}
		seen[s] = k
	}
}
