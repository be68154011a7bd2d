package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token. The lexer guarantees an Invalid
	// token still covers at least one byte, so the stream always advances.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// NothingLit represents the 'nothing' literal token.
	NothingLit
	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Shl represents the shift-left operator token.
	Shl // <<
	// Shr represents the shift-right operator token.
	Shr // >>
	// Amp represents the bitwise-and operator token.
	Amp // &
	// Pipe represents the bitwise-or operator token.
	Pipe // |
	// Caret represents the bitwise-xor operator token.
	Caret // ^
	// Tilde represents the bitwise-not operator token.
	Tilde // ~
	// AndAnd represents the logical-and operator token.
	AndAnd // &&
	// OrOr represents the logical-or operator token.
	OrOr // ||
	// Colon represents the colon token.
	Colon // :
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// Arrow represents the arrow token.
	Arrow // ->
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Underscore represents the bare '_' token.
	Underscore // _

	kindCount // keep last
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	KwFn:          "fn",
	KwLet:         "let",
	KwMut:         "mut",
	KwIf:          "if",
	KwElse:        "else",
	KwWhile:       "while",
	KwBreak:       "break",
	KwContinue:    "continue",
	KwReturn:      "return",
	KwTrue:        "true",
	KwFalse:       "false",
	NothingLit:    "nothing",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	AndAnd:        "&&",
	OrOr:          "||",
	Colon:         ":",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	Arrow:         "->",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	Underscore:    "_",
}

// String returns the canonical spelling for operators/keywords and the
// category name for variable-text kinds.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsEOF reports whether the kind is the end-of-input sentinel.
func (k Kind) IsEOF() bool { return k == EOF }
