package parser

import (
	"wu/internal/ast"
	"wu/internal/diag"
	"wu/internal/lexer"
	"wu/internal/source"
	"wu/internal/token"
)

// maxNestingDepth bounds recursive descent. Inputs nested deeper than this
// get a SynNestingTooDeep diagnostic and an Error node instead of a stack
// overflow.
const maxNestingDepth = 192

// defaultMaxErrors caps how many syntax errors one parse reports.
// Parsing itself always continues to EOF.
const defaultMaxErrors = 100

// Options configures one parse. A nil Reporter drops diagnostics silently.
type Options struct {
	Reporter diag.Reporter
	// MaxErrors limits reported syntax errors; <= 0 means the default.
	MaxErrors int
}

// Parser is a recursive-descent parser over one file's token stream.
// It never fails: any byte sequence yields an ast.File, with Error nodes
// standing in for unparseable regions.
type Parser struct {
	file    *source.File
	lx      *lexer.Lexer
	builder *ast.Builder
	opts    Options

	tok  token.Token // current significant token
	prev source.Span // span of the last consumed token

	errCount int
	depth    int
}

func New(file *source.File, builder *ast.Builder, opts Options) *Parser {
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = defaultMaxErrors
	}
	p := &Parser{
		file:    file,
		lx:      lexer.New(file, lexer.Options{Reporter: opts.Reporter}),
		builder: builder,
		opts:    opts,
	}
	p.advance() // prime the lookahead
	p.prev = source.Span{File: file.ID, Start: 0, End: 0}
	return p
}

// ParseFile parses the whole file into builder and returns the root node.
func ParseFile(file *source.File, builder *ast.Builder, opts Options) ast.FileID {
	p := New(file, builder, opts)
	return p.parseFile()
}

func (p *Parser) parseFile() ast.FileID {
	fileSpan := source.Span{File: p.file.ID, Start: 0, End: uint32(len(p.file.Content))}
	fileID := p.builder.NewFile(fileSpan)

	for !p.tok.Kind.IsEOF() {
		// stray semicolons between statements are harmless
		if p.tok.Kind == token.Semicolon {
			p.advance()
			continue
		}
		before := p.tok.Span.Start
		stmt := p.parseStmt(true)
		p.builder.PushStmt(fileID, stmt)

		// Hard forward-progress guarantee: a statement that consumed
		// nothing gets its blocking token dropped.
		if !p.tok.Kind.IsEOF() && p.tok.Span.Start == before {
			p.advance()
		}
	}
	return fileID
}

// advance moves to the next significant token.
func (p *Parser) advance() {
	if p.tok.Kind != 0 || p.tok.Span.End != 0 {
		p.prev = p.tok.Span
	}
	p.tok = p.lx.Next()
}

// at reports whether the current token has the given kind.
func (p *Parser) at(kind token.Kind) bool {
	return p.tok.Kind == kind
}

// eat consumes the current token if it matches.
func (p *Parser) eat(kind token.Kind) bool {
	if p.tok.Kind == kind {
		p.advance()
		return true
	}
	return false
}

// enter bumps the nesting depth. When the limit is hit it reports once per
// offending token and tells the caller to bail with an Error node.
func (p *Parser) enter() bool {
	if p.depth >= maxNestingDepth {
		p.err(diag.SynNestingTooDeep, p.tok.Span, "construct nested too deeply")
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

// err reports a syntax error unless the error budget is spent.
func (p *Parser) err(code diag.Code, sp source.Span, msg string) {
	if p.errCount >= p.opts.MaxErrors {
		return
	}
	p.errCount++
	diag.ReportError(p.opts.Reporter, code, sp, msg)
}

// exprSpan reads back the span of an already-built expression.
func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if e := p.builder.Exprs.Get(id); e != nil {
		return e.Span
	}
	return p.tok.Span
}

// stmtSpan reads back the span of an already-built statement.
func (p *Parser) stmtSpan(id ast.StmtID) source.Span {
	if s := p.builder.Stmts.Get(id); s != nil {
		return s.Span
	}
	return p.tok.Span
}

// expectSemicolon consumes ';' or reports a zero-width insertion point
// right after the previous token and resyncs.
func (p *Parser) expectSemicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	p.err(diag.SynExpectSemicolon, p.prev.ZeroideToEnd(), "expected ';'")
	p.resyncStmt()
}

// expectIdent consumes an identifier and returns its interned name.
func (p *Parser) expectIdent(what string) (source.StringID, bool) {
	if p.at(token.Ident) {
		name := p.builder.StringsInterner.Intern(p.tok.Text)
		p.advance()
		return name, true
	}
	p.err(diag.SynExpectIdentifier, p.tok.Span, "expected "+what)
	return source.NoStringID, false
}

// resyncStmt is panic-mode recovery: it drops tokens until a statement
// boundary. A ';' is consumed; '}' and statement keywords are left for the
// caller.
func (p *Parser) resyncStmt() {
	for !p.tok.Kind.IsEOF() {
		switch {
		case p.at(token.Semicolon):
			p.advance()
			return
		case p.at(token.RBrace), isStmtStart(p.tok.Kind):
			return
		default:
			p.advance()
		}
	}
}
