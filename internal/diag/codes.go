package diag

import (
	"fmt"
)

// Code is a compact, stable identifier of a diagnostic kind.
// Lexical codes live in the 1000 range, syntactic ones in the 2000 range.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectExpression   Code = 2003
	SynExpectIdentifier   Code = 2004
	SynUnclosedParen      Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedBracket    Code = 2007
	SynNestingTooDeep     Code = 2008
	SynUnexpectedTopLevel Code = 2009
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown diagnostic",
	LexUnknownChar:              "unrecognized byte",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",
	SynUnexpectedToken:          "unexpected token",
	SynExpectSemicolon:          "missing semicolon",
	SynExpectExpression:         "expected expression",
	SynExpectIdentifier:         "expected identifier",
	SynUnclosedParen:            "unclosed parenthesis",
	SynUnclosedBrace:            "unclosed brace",
	SynUnclosedBracket:          "unclosed bracket",
	SynNestingTooDeep:           "nesting too deep",
	SynUnexpectedTopLevel:       "unexpected top-level construct",
}

// ID returns the short stable form used in CLI output, e.g. "LEX1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	}
	return "E0000"
}

// Title returns a short human description of the code.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
