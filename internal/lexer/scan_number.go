package lexer

import (
	"wu/internal/diag"
	"wu/internal/token"
)

// Supported: 0, 123, 0b..., 0o..., 0x..., 1.0, .5, 1e-3, 1.0e+10, with '_'
// allowed between digits. Malformed forms are reported through the Reporter
// and still terminate in a token, so the scan always makes progress.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	bad := func(msg string) token.Token {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, msg)
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// leading dot: ".digits" (caller checked a digit follows)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			return bad("expected digit after '.'")
		}
		kind = token.FloatLit
		lx.eatDecDigits()
		return lx.scanExponent(start, kind)
	}

	// base prefix?
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			n := 0
			for {
				b := lx.cursor.Peek()
				if b == '0' || b == '1' {
					n++
				} else if b != '_' {
					break
				}
				lx.cursor.Bump()
			}
			if n == 0 {
				return bad("expected binary digits after '0b'")
			}
			return emit(token.IntLit)
		case 'o', 'O':
			lx.cursor.Bump()
			n := 0
			for {
				b := lx.cursor.Peek()
				if b >= '0' && b <= '7' {
					n++
				} else if b != '_' {
					break
				}
				lx.cursor.Bump()
			}
			if n == 0 {
				return bad("expected octal digits after '0o'")
			}
			return emit(token.IntLit)
		case 'x', 'X':
			lx.cursor.Bump()
			n := 0
			for {
				b := lx.cursor.Peek()
				if isHex(b) {
					n++
				} else if b != '_' {
					break
				}
				lx.cursor.Bump()
			}
			if n == 0 {
				return bad("expected hex digits after '0x'")
			}
			return emit(token.IntLit)
		default:
			// plain "0", possibly with a fraction below
		}
	}

	// decimal integer part
	lx.eatDecDigits()

	// fraction; a single trailing dot ("1.") still makes a float
	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '.' && isIdentStartByte(b1) {
			// "1.foo" is a member access on a literal, not a malformed float
		} else {
			lx.cursor.Bump()
			kind = token.FloatLit
			if isDec(lx.cursor.Peek()) {
				lx.eatDecDigits()
			}
		}
	}

	return lx.scanExponent(start, kind)
}

// eatDecDigits consumes [0-9_]*.
func (lx *Lexer) eatDecDigits() {
	for {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

// scanExponent finishes a numeric scan, consuming an optional exponent.
func (lx *Lexer) scanExponent(start Mark, kind token.Kind) token.Token {
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.eatDecDigits()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
