package token

import (
	"wu/internal/source"
)

// Token represents a single source token with its location and trivia.
// Tokens are immutable once produced; the parser consumes and drops them.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, boolean, string, or
// nothing literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case NothingLit, IntLit, FloatLit, StringLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Assign, PlusAssign, MinusAssign,
		StarAssign, SlashAssign, PercentAssign, EqEq, Bang, BangEq, Lt, LtEq,
		Gt, GtEq, Shl, Shr, Amp, Pipe, Caret, Tilde, AndAnd, OrOr, Colon,
		Semicolon, Comma, Dot, Arrow, LParen, RParen, LBrace, RBrace,
		LBracket, RBracket, Underscore:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwLet, KwMut, KwIf, KwElse, KwWhile, KwBreak, KwContinue,
		KwReturn, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
