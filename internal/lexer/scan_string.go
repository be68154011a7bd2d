package lexer

import (
	"wu/internal/diag"
	"wu/internal/token"
)

// scanString scans a double-quoted string literal. Escape sequences are
// consumed as backslash plus one byte and validated later; newlines are
// allowed inside the literal. An unterminated string still produces a
// StringLit over the consumed bytes so the token stream stays total.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch b {
		case '"':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case '\\':
			// the escaped byte is opaque here; EOF right after the
			// backslash falls through to the unterminated path
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
