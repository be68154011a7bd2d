package token

import "wu/internal/source"

// TriviaKind classifies non-semantic input attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	}
	return "Trivia(?)"
}

// Trivia is whitespace or a comment collected in front of a token.
// Comments never appear in the significant token stream.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
