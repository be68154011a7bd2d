package lexer

import (
	"wu/internal/source"
	"wu/internal/token"
)

// Lexer turns the bytes of one file into a stream of significant tokens.
// It is a pure function of the cursor position: no state survives past
// EOF, and a fresh Lexer is built for every frontend invocation.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // one-token lookahead buffer
	hold   []token.Trivia // accumulated leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
		hold:   nil,
	}
}

// Next returns the next significant token with its leading trivia attached.
// After EOF it always returns EOF again.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	// Trailing trivia rides on the EOF token so nothing is lost.
	if lx.cursor.EOF() {
		tok := token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// possible Unicode identifier; the scanner sorts it out
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil

	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan is a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
