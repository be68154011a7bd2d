package lexer

import (
	"wu/internal/diag"
	"wu/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation with longest-match
// first: two-byte forms via try2, then the single byte. A byte that matches
// nothing becomes a one-byte Invalid token, so the cursor always advances.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch lx.cursor.Peek() {
	case '+':
		if lx.try2('+', '=') {
			return emit(token.PlusAssign)
		}
		lx.cursor.Bump()
		return emit(token.Plus)
	case '-':
		if lx.try2('-', '>') {
			return emit(token.Arrow)
		}
		if lx.try2('-', '=') {
			return emit(token.MinusAssign)
		}
		lx.cursor.Bump()
		return emit(token.Minus)
	case '*':
		if lx.try2('*', '=') {
			return emit(token.StarAssign)
		}
		lx.cursor.Bump()
		return emit(token.Star)
	case '/':
		if lx.try2('/', '=') {
			return emit(token.SlashAssign)
		}
		lx.cursor.Bump()
		return emit(token.Slash)
	case '%':
		if lx.try2('%', '=') {
			return emit(token.PercentAssign)
		}
		lx.cursor.Bump()
		return emit(token.Percent)
	case '=':
		if lx.try2('=', '=') {
			return emit(token.EqEq)
		}
		lx.cursor.Bump()
		return emit(token.Assign)
	case '!':
		if lx.try2('!', '=') {
			return emit(token.BangEq)
		}
		lx.cursor.Bump()
		return emit(token.Bang)
	case '<':
		if lx.try2('<', '<') {
			return emit(token.Shl)
		}
		if lx.try2('<', '=') {
			return emit(token.LtEq)
		}
		lx.cursor.Bump()
		return emit(token.Lt)
	case '>':
		if lx.try2('>', '>') {
			return emit(token.Shr)
		}
		if lx.try2('>', '=') {
			return emit(token.GtEq)
		}
		lx.cursor.Bump()
		return emit(token.Gt)
	case '&':
		if lx.try2('&', '&') {
			return emit(token.AndAnd)
		}
		lx.cursor.Bump()
		return emit(token.Amp)
	case '|':
		if lx.try2('|', '|') {
			return emit(token.OrOr)
		}
		lx.cursor.Bump()
		return emit(token.Pipe)
	case '^':
		lx.cursor.Bump()
		return emit(token.Caret)
	case '~':
		lx.cursor.Bump()
		return emit(token.Tilde)
	case ':':
		lx.cursor.Bump()
		return emit(token.Colon)
	case ';':
		lx.cursor.Bump()
		return emit(token.Semicolon)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case '.':
		lx.cursor.Bump()
		return emit(token.Dot)
	case '(':
		lx.cursor.Bump()
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		return emit(token.RParen)
	case '{':
		lx.cursor.Bump()
		return emit(token.LBrace)
	case '}':
		lx.cursor.Bump()
		return emit(token.RBrace)
	case '[':
		lx.cursor.Bump()
		return emit(token.LBracket)
	case ']':
		lx.cursor.Bump()
		return emit(token.RBracket)
	}

	// unknown byte: consume exactly one so the lexer keeps moving
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unrecognized character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
