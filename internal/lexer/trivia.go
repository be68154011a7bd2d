package lexer

import (
	"wu/internal/diag"
	"wu/internal/token"
)

// collectLeadingTrivia consumes whitespace and comments in front of the next
// significant token and stashes them in lx.hold. Runs of spaces and runs of
// newlines are coalesced into single trivia entries.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == ' ' || b == '\t':
			start := lx.cursor.Mark()
			for {
				b := lx.cursor.Peek()
				if b != ' ' && b != '\t' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaSpace, start)

		case b == '\n' || b == '\r':
			start := lx.cursor.Mark()
			for {
				b := lx.cursor.Peek()
				if b != '\n' && b != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)

		case b == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' {
				return
			}
			switch b1 {
			case '/':
				lx.scanLineComment()
			case '*':
				lx.scanBlockComment()
			default:
				return
			}

		default:
			return
		}
	}
}

// scanLineComment consumes "//" up to (not including) the newline.
func (lx *Lexer) scanLineComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if b := lx.cursor.Peek(); b == '\n' || b == '\r' {
			break
		}
		lx.cursor.Bump()
	}
	lx.pushTrivia(token.TriviaLineComment, start)
}

// scanBlockComment consumes "/*" ... "*/" with nesting. An unterminated
// comment swallows the rest of the file and reports once.
func (lx *Lexer) scanBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	depth := 1
	for depth > 0 && !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '/' && b1 == '*' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth++
			continue
		}
		if ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			depth--
			continue
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
	lx.pushTrivia(token.TriviaBlockComment, start)
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	})
}
