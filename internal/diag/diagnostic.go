package diag

import (
	"wu/internal/source"
)

// Note is a secondary span/message adding context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a structured, non-fatal report of a lexical or syntactic
// anomaly. Diagnostics never abort the parse; they accumulate in a Bag in
// emission order.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
