// Package token defines lexical token kinds and trivia for the Wu frontend.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text byte-for-byte (Start..End).
//   - Comments and whitespace are represented as leading Trivia and never
//     appear in the significant token stream.
//   - Built-in type names (int, float, str, bool) are ordinary identifiers;
//     nothing in the lexer special-cases them.
package token
