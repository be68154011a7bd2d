// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Diagnostic is the central record: Severity, a stable numeric Code with a
// short ID form, a human message, a primary source.Span, and optional Notes.
// Producers emit through the Reporter interface; BagReporter aggregates into
// a Bag, which preserves emission order and exposes HasErrors/ErrorCount for
// the CLI exit-code decision.
//
// The package performs no formatting or IO. Rendering lives in
// internal/diagfmt. Every Bag is created per frontend invocation and has no
// life beyond it.
package diag
