package lexer

import (
	"wu/internal/diag"
	"wu/internal/source"
)

// Options configures one Lexer. A nil Reporter is allowed: lexical errors
// are then dropped but scanning continues exactly the same way.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg)
}
